/*
   Copyright 2026 The Axisgate Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package tracking

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

// DefaultPrefix is the request-id prefix used when the caller passes none.
const DefaultPrefix = "req"

// inboundIDRe is the conservative shape an inbound X-Request-ID must have to
// be trusted: alphanumeric plus _ and -, between 10 and 100 characters.
var inboundIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{10,100}$`)

// AcceptableInboundID reports whether a client-supplied id may be adopted
// instead of minting a fresh one.
func AcceptableInboundID(id string) bool {
	return inboundIDRe.MatchString(id)
}

// GenerateRequestID mints a unique request identifier:
//
//	<prefix>_<unix-millis>_<16 hex chars of entropy>_<sequence>
//
// The three components together make collisions practically impossible; the
// monotonic sequence alone already separates ids minted within the same
// millisecond with identical entropy.
func (m *Manager) GenerateRequestID(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	seq := m.seq.Add(1)

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Entropy failure is effectively unheard of; keep the id unique
		// through the UUID fallback rather than failing request entry.
		return FallbackID(prefix)
	}
	return fmt.Sprintf("%s_%d_%s_%d",
		prefix, m.now().UnixMilli(), hex.EncodeToString(buf[:]), seq)
}

// GenerateCorrelationID mints a correlation identifier: "corr_" plus 16 hex
// characters of a digest over the current time and fresh entropy.
func (m *Manager) GenerateCorrelationID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "corr_" + uuid.NewString()[:16]
	}
	seed := strconv.FormatInt(m.now().UnixNano(), 10)
	sum := sha256.Sum256(append([]byte(seed), buf[:]...))
	return "corr_" + hex.EncodeToString(sum[:8])
}

// FallbackID is the minimal identity minted when normal request entry fails.
func FallbackID(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "_" + uuid.NewString()
}
