package main

import (
	"github.com/leighmacdonald/capwatch/internal/cmd"
)

func main() {
	cmd.Execute()
}
