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
	"net"
	"regexp"
	"strings"
)

var (
	uuidSegRe    = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	numericSegRe = regexp.MustCompile(`^[0-9]+$`)
	sessionSegRe = regexp.MustCompile(`^sess_[A-Za-z0-9_-]+$`)
)

// NormalizeEndpoint collapses variable path segments so that metadata and
// statistics group by route rather than by individual resource:
//
//	/v1/sessions/sess_abc123/items/42  ->  /v1/sessions/{session_id}/items/{id}
//
// UUID segments become {uuid}, pure-numeric segments {id}, sess_*-shaped
// segments {session_id}. Any query string is stripped first.
func NormalizeEndpoint(path string) string {
	if path == "" {
		return "/"
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	segs := strings.Split(path, "/")
	for i, seg := range segs {
		switch {
		case seg == "":
		case uuidSegRe.MatchString(seg):
			segs[i] = "{uuid}"
		case numericSegRe.MatchString(seg):
			segs[i] = "{id}"
		case sessionSegRe.MatchString(seg):
			segs[i] = "{session_id}"
		}
	}
	out := strings.Join(segs, "/")
	if !strings.HasPrefix(out, "/") {
		out = "/" + out
	}
	return out
}

// ClientIP resolves the caller's address from proxy headers and the socket,
// in trust order: first X-Forwarded-For entry, then X-Real-IP, then the
// socket address with its port stripped. "unknown" when nothing is usable.
func ClientIP(forwardedFor, realIP, remoteAddr string) string {
	if forwardedFor != "" {
		first := forwardedFor
		if i := strings.IndexByte(first, ','); i >= 0 {
			first = first[:i]
		}
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP = strings.TrimSpace(realIP); realIP != "" {
		return realIP
	}
	if remoteAddr != "" {
		if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
			return host
		}
		return remoteAddr
	}
	return "unknown"
}
