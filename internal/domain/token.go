package domain

import (
	"time"

	"golang.org/x/oauth2"
)

// DeviceCode holds the response of a device authorization request.
// UserCode is shown to the user together with VerificationURL; DeviceCode is
// kept back and exchanged for tokens once the user has signed in.
type DeviceCode struct {
	UserCode        string
	DeviceCode      string
	VerificationURL string
	ExpiresIn       int    // seconds until the device code expires, 0 if not sent
	Interval        int    // suggested polling interval in seconds, 0 if not sent
	Message         string // provider supplied instructions, may be empty
}

// Token holds the tokens issued for the target resource.
type Token struct {
	Resource     string
	ExpiresOn    time.Time
	AccessToken  string
	RefreshToken string
	TokenType    string
	Scope        string
}

// expiryLayout matches the C locale rendering of strftime("%c").
const expiryLayout = time.ANSIC

// FormatExpiry renders t in loc using a fixed, locale independent layout.
// A nil loc means time.Local.
func FormatExpiry(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(expiryLayout)
}

// ExpiryFromUnix converts epoch seconds into a time.Time.
func ExpiryFromUnix(sec int64) time.Time {
	return time.Unix(sec, 0)
}

// OAuth2 returns t as an oauth2.Token. The resource and scope travel as extras.
func (t Token) OAuth2() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.ExpiresOn,
	}
	return tok.WithExtra(map[string]interface{}{
		"resource": t.Resource,
		"scope":    t.Scope,
	})
}
