// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package security

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/shaj13/go-guardian/v2/auth/strategies/token"
	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"

	"github.com/staffhub/staff-admin-service/exception"
)

var gateStrategy auth.Strategy

// SetupGoGuardian wires the bearer token gate. The pre-shared secret is
// compared in constant time; a mismatch is a Forbidden condition, while a
// missing or malformed Authorization header is Unauthorized.
func SetupGoGuardian(apiToken string) {
	cache := libcache.LRU.New(16)
	cache.RegisterOnExpired(func(key, _ interface{}) {
		cache.Delete(key)
	})
	gateStrategy = token.New(apiTokenAuthenticator(apiToken), cache)
}

func apiTokenAuthenticator(apiToken string) token.AuthenticateFunc {
	return func(ctx context.Context, r *http.Request, tokenValue string) (auth.Info, time.Time, error) {
		if subtle.ConstantTimeCompare([]byte(tokenValue), []byte(apiToken)) != 1 {
			return nil, time.Time{}, &exception.CustomError{
				Status:  http.StatusForbidden,
				Code:    exception.TokenInvalid,
				Message: exception.TokenInvalidMsg,
			}
		}
		return auth.NewDefaultUser("api-client", "api-client", nil, nil), time.Time{}, nil
	}
}
