package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/staffhub/staff-admin-service/view"
)

// DirectoryClient wraps the document store holding the credential directory:
// a single document mapping email -> [displayName, email, role, city].
// Entries are only ever appended, never updated or deleted.
type DirectoryClient interface {
	FindDirectoryDocument(ctx context.Context) (*DirectoryDocument, error)
	AppendEntry(ctx context.Context, documentName string, email string, entry view.DirectoryEntry) error
}

type DirectoryDocument struct {
	Name   string
	Emails map[string]struct{}
}

func (d *DirectoryDocument) HasEmail(email string) bool {
	_, exists := d.Emails[email]
	return exists
}

func NewDirectoryClient(baseUrl string, projectId string, databaseId string, collection string, tokenSource oauth2.TokenSource) DirectoryClient {
	return &directoryClientImpl{
		baseUrl:     strings.TrimSuffix(baseUrl, "/"),
		projectId:   projectId,
		databaseId:  databaseId,
		collection:  collection,
		tokenSource: tokenSource,
		httpClient:  newHTTPClient(),
	}
}

type directoryClientImpl struct {
	baseUrl     string
	projectId   string
	databaseId  string
	collection  string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

type storeValue struct {
	StringValue *string          `json:"stringValue,omitempty"`
	ArrayValue  *storeArrayValue `json:"arrayValue,omitempty"`
}

type storeArrayValue struct {
	Values []storeValue `json:"values,omitempty"`
}

type storeDocument struct {
	Name   string                `json:"name,omitempty"`
	Fields map[string]storeValue `json:"fields"`
}

type listDocumentsResponse struct {
	Documents []storeDocument `json:"documents"`
}

type storeErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// FindDirectoryDocument returns the first document of the directory
// collection, or nil when the collection is empty. The document is expected
// to pre-exist; this client never creates it.
func (d *directoryClientImpl) FindDirectoryDocument(ctx context.Context) (*DirectoryDocument, error) {
	query := url.Values{}
	query.Set("pageSize", "1")
	reqUrl := fmt.Sprintf("%s/projects/%s/databases/%s/documents/%s?%s",
		d.baseUrl, d.projectId, d.databaseId, d.collection, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqUrl, nil)
	if err != nil {
		return nil, err
	}
	body, err := d.do(req)
	if err != nil {
		return nil, err
	}

	var response listDocumentsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "failed to decode directory documents")
	}
	if len(response.Documents) == 0 {
		return nil, nil
	}

	document := response.Documents[0]
	emails := make(map[string]struct{}, len(document.Fields))
	for email := range document.Fields {
		emails[email] = struct{}{}
	}
	return &DirectoryDocument{Name: document.Name, Emails: emails}, nil
}

// AppendEntry writes a single email key into the directory document. The
// write is restricted to that key via an update mask, so two concurrent
// appends for different emails cannot clobber each other's fields.
func (d *directoryClientImpl) AppendEntry(ctx context.Context, documentName string, email string, entry view.DirectoryEntry) error {
	values := make([]storeValue, 0, len(entry))
	for i := range entry {
		value := entry[i]
		values = append(values, storeValue{StringValue: &value})
	}
	payload, err := json.Marshal(storeDocument{
		Fields: map[string]storeValue{
			email: {ArrayValue: &storeArrayValue{Values: values}},
		},
	})
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("updateMask.fieldPaths", quoteFieldPath(email))
	reqUrl := fmt.Sprintf("%s/%s?%s", d.baseUrl, documentName, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, reqUrl, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if _, err := d.do(req); err != nil {
		return err
	}

	log.Debugf("appended directory entry for %s to %s", email, documentName)
	return nil
}

func (d *directoryClientImpl) do(req *http.Request) ([]byte, error) {
	token, err := d.tokenSource.Token()
	if err != nil {
		return nil, errors.Wrap(err, "failed to obtain document store token")
	}
	token.SetAuthHeader(req)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "document store request %s failed", req.URL.Path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var errResponse storeErrorResponse
		if err := json.Unmarshal(body, &errResponse); err == nil && errResponse.Error.Message != "" {
			return nil, errors.New(errResponse.Error.Message)
		}
		return nil, errors.Errorf("unexpected status code %d", resp.StatusCode)
	}
	return body, nil
}

var fieldPathEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`")

// quoteFieldPath backtick-quotes a field path so that emails, which contain
// characters outside the store's simple-identifier grammar, address exactly
// one top-level field.
func quoteFieldPath(fieldPath string) string {
	return "`" + fieldPathEscaper.Replace(fieldPath) + "`"
}
