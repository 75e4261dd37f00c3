package mailbox

import (
	"strings"

	"github.com/abusix/ioc-parsers/parsers/common"
	"github.com/abusix/ioc-parsers/pkg/email"
)

// Filter selects emails by sender address and subject. Empty fields match
// every email; the sender is compared case-insensitively, the subject exactly.
type Filter struct {
	Sender  string
	Subject string
}

// Match reports whether the email passes the filter
func (f Filter) Match(serializedEmail *email.SerializedEmail) bool {
	if f.Sender != "" {
		from, _ := common.GetFrom(serializedEmail, false)
		if from != strings.ToLower(strings.TrimSpace(f.Sender)) {
			return false
		}
	}
	if f.Subject != "" {
		subject, _ := common.GetSubject(serializedEmail, false)
		if subject != f.Subject {
			return false
		}
	}
	return true
}
