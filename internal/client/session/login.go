package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/groupe-sii/lumext/internal/common"
)

// ErrLoginFailed is returned when the portal refuses the credentials.
var ErrLoginFailed = errors.New("login failed")

// Login opens a portal session with basic credentials "user@org" and returns
// the session token found in the x-vcloud-authorization response header.
// The CLI uses it when it is not given a token by its configuration.
func Login(ctx context.Context, hc *http.Client, apiRoot, user, org string, password []byte) (string, error) {
	if hc == nil {
		hc = http.DefaultClient
	}

	url := strings.TrimRight(apiRoot, "/") + common.SessionsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(user+"@"+org, string(password))
	req.Header.Set("Accept", common.MediaType)

	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("open session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", ErrLoginFailed, resp.Status)
	}
	token := resp.Header.Get(common.AuthHeaderName)
	if token == "" {
		return "", fmt.Errorf("%w: no session token in response", ErrLoginFailed)
	}
	return token, nil
}
