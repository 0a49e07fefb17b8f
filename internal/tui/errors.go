// SPDX-License-Identifier: Apache-2.0

package tui

import "strings"

// humanizeServerUnavailableError collapses the transport error zoo behind
// sync and AI calls into one message the user can act on. Anything that is
// not a connectivity failure passes through verbatim.
func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"dial tcp",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"context deadline exceeded",
	} {
		if strings.Contains(s, marker) {
			return "Отсутствует сеть или Сервер недоступен"
		}
	}

	return err.Error()
}
