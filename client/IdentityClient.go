package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// IdentityClient wraps the identity service's admin REST API. Account records
// are owned by the identity service and never mutated through this client.
type IdentityClient interface {
	ListAccounts(ctx context.Context, pageSize int, pageToken string) (*AccountsPage, error)
	CreateAccount(ctx context.Context, account NewAccount) (*AccountRecord, error)
}

type AccountsPage struct {
	Users         []AccountRecord
	NextPageToken string
}

type AccountRecord struct {
	Uid         string
	Email       string
	DisplayName string
	ProviderIds []string
	CreatedAt   string
	LastLoginAt string
}

type NewAccount struct {
	Email         string
	Password      string
	DisplayName   string
	EmailVerified bool
}

func NewIdentityClient(baseUrl string, projectId string, tokenSource oauth2.TokenSource) IdentityClient {
	return &identityClientImpl{
		baseUrl:     strings.TrimSuffix(baseUrl, "/"),
		projectId:   projectId,
		tokenSource: tokenSource,
		httpClient:  newHTTPClient(),
	}
}

type identityClientImpl struct {
	baseUrl     string
	projectId   string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

// identityAccount is the wire shape of a single user record.
// createdAt and lastLoginAt arrive as epoch-millisecond strings.
type identityAccount struct {
	LocalId          string                 `json:"localId"`
	Email            string                 `json:"email"`
	DisplayName      string                 `json:"displayName"`
	ProviderUserInfo []identityProviderInfo `json:"providerUserInfo"`
	CreatedAt        string                 `json:"createdAt"`
	LastLoginAt      string                 `json:"lastLoginAt"`
}

type identityProviderInfo struct {
	ProviderId string `json:"providerId"`
}

type downloadAccountsResponse struct {
	Users         []identityAccount `json:"users"`
	NextPageToken string            `json:"nextPageToken"`
}

type createAccountRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	DisplayName   string `json:"displayName"`
	EmailVerified bool   `json:"emailVerified"`
}

type identityErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (i *identityClientImpl) ListAccounts(ctx context.Context, pageSize int, pageToken string) (*AccountsPage, error) {
	query := url.Values{}
	query.Set("maxResults", strconv.Itoa(pageSize))
	if pageToken != "" {
		query.Set("nextPageToken", pageToken)
	}

	body, err := i.get(ctx, "accounts:batchGet", query)
	if err != nil {
		return nil, err
	}

	var response downloadAccountsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "failed to decode accounts page")
	}

	page := AccountsPage{
		Users:         make([]AccountRecord, 0, len(response.Users)),
		NextPageToken: response.NextPageToken,
	}
	for _, account := range response.Users {
		page.Users = append(page.Users, account.record())
	}
	return &page, nil
}

func (i *identityClientImpl) CreateAccount(ctx context.Context, account NewAccount) (*AccountRecord, error) {
	payload, err := json.Marshal(createAccountRequest{
		Email:         account.Email,
		Password:      account.Password,
		DisplayName:   account.DisplayName,
		EmailVerified: account.EmailVerified,
	})
	if err != nil {
		return nil, err
	}

	body, err := i.post(ctx, "accounts", payload)
	if err != nil {
		return nil, err
	}

	var created identityAccount
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, errors.Wrap(err, "failed to decode created account")
	}

	log.Debugf("created identity account %s", created.LocalId)
	record := created.record()
	return &record, nil
}

func (i *identityClientImpl) get(ctx context.Context, resource string, query url.Values) ([]byte, error) {
	reqUrl := fmt.Sprintf("%s/projects/%s/%s?%s", i.baseUrl, i.projectId, resource, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqUrl, nil)
	if err != nil {
		return nil, err
	}
	return i.do(req)
}

func (i *identityClientImpl) post(ctx context.Context, resource string, payload []byte) ([]byte, error) {
	reqUrl := fmt.Sprintf("%s/projects/%s/%s", i.baseUrl, i.projectId, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqUrl, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return i.do(req)
}

func (i *identityClientImpl) do(req *http.Request) ([]byte, error) {
	token, err := i.tokenSource.Token()
	if err != nil {
		return nil, errors.Wrap(err, "failed to obtain identity service token")
	}
	token.SetAuthHeader(req)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "identity service request %s failed", req.URL.Path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(upstreamErrorMessage(body, resp.StatusCode))
	}
	return body, nil
}

// upstreamErrorMessage extracts the service's own message so callers can
// propagate it verbatim (e.g. EMAIL_EXISTS on a duplicate account).
func upstreamErrorMessage(body []byte, statusCode int) string {
	var errResponse identityErrorResponse
	if err := json.Unmarshal(body, &errResponse); err == nil && errResponse.Error.Message != "" {
		return errResponse.Error.Message
	}
	return fmt.Sprintf("unexpected status code %d", statusCode)
}

func (a identityAccount) record() AccountRecord {
	providerIds := make([]string, 0, len(a.ProviderUserInfo))
	for _, provider := range a.ProviderUserInfo {
		providerIds = append(providerIds, provider.ProviderId)
	}
	return AccountRecord{
		Uid:         a.LocalId,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		ProviderIds: providerIds,
		CreatedAt:   millisToUTC(a.CreatedAt),
		LastLoginAt: millisToUTC(a.LastLoginAt),
	}
}

// millisToUTC renders an epoch-millisecond string as RFC3339 UTC. Records
// with no value (e.g. lastLoginAt for a user that never signed in) yield an
// empty string, which the display formatter downstream treats as unparseable.
func millisToUTC(millis string) string {
	if millis == "" {
		return ""
	}
	ms, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
