// SPDX-License-Identifier: Apache-2.0

package server

import "errors"

// errNoServersConfigured is reported when the configuration enables no
// listen address, leaving the document API with no transport to run on.
var errNoServersConfigured = errors.New("no document servers are configured")
