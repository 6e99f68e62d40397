package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/leighmacdonald/capwatch/internal/httphelper"
	"github.com/leighmacdonald/capwatch/internal/log"
)

// Fetch downloads the stats snapshot from a running instance at baseURL.
func Fetch(ctx context.Context, client *http.Client, baseURL string) (Snapshot, error) {
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(baseURL, "/")+"/stats", nil)
	if errReq != nil {
		return nil, errors.Join(errReq, httphelper.ErrRequestCreate)
	}

	resp, errResp := client.Do(req)
	if errResp != nil {
		return nil, errors.Join(errResp, httphelper.ErrRequestPerform)
	}

	defer log.Closer(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", httphelper.ErrRequestInvalidCode, resp.StatusCode)
	}

	var snapshot Snapshot
	if errDecode := json.NewDecoder(resp.Body).Decode(&snapshot); errDecode != nil {
		return nil, errors.Join(errDecode, httphelper.ErrRequestDecode)
	}

	return snapshot, nil
}
