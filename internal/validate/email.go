// Package validate gates drafts before identity resolution: business-email
// acceptability and website quality.
package validate

import "strings"

// freeMailDomains lists consumer webmail providers. Emails on these domains
// are still ingestable contacts, but the domain never identifies a company.
var freeMailDomains = map[string]bool{
	"gmail.com":      true,
	"googlemail.com": true,
	"yahoo.com":      true,
	"yahoo.co.uk":    true,
	"ymail.com":      true,
	"rocketmail.com": true,
	"hotmail.com":    true,
	"hotmail.co.uk":  true,
	"hotmail.nl":     true,
	"outlook.com":    true,
	"live.com":       true,
	"live.nl":        true,
	"msn.com":        true,
	"aol.com":        true,
	"icloud.com":     true,
	"me.com":         true,
	"mac.com":        true,
	"protonmail.com": true,
	"proton.me":      true,
	"gmx.com":        true,
	"gmx.de":         true,
	"gmx.net":        true,
	"zoho.com":       true,
	"mail.com":       true,
	"ziggo.nl":       true,
	"kpnmail.nl":     true,
	"planet.nl":      true,
	"home.nl":        true,
	"casema.nl":      true,
	"hetnet.nl":      true,
	"xs4all.nl":      true,
	"upcmail.nl":     true,
	"telenet.be":     true,
	"skynet.be":      true,
	"web.de":         true,
	"t-online.de":    true,
	"orange.fr":      true,
	"wanadoo.fr":     true,
	"free.fr":        true,
	"comcast.net":    true,
	"verizon.net":    true,
	"att.net":        true,
	"sbcglobal.net":  true,
}

// disposableDomains lists throwaway-email providers; these are rejected
// outright.
var disposableDomains = map[string]bool{
	"mailinator.com":      true,
	"guerrillamail.com":   true,
	"guerrillamail.info":  true,
	"10minutemail.com":    true,
	"10minutemail.net":    true,
	"tempmail.com":        true,
	"temp-mail.org":       true,
	"throwawaymail.com":   true,
	"yopmail.com":         true,
	"trashmail.com":       true,
	"getnada.com":         true,
	"maildrop.cc":         true,
	"dispostable.com":     true,
	"fakeinbox.com":       true,
	"sharklasers.com":     true,
	"spam4.me":            true,
	"mintemail.com":       true,
	"mytemp.email":        true,
	"burnermail.io":       true,
	"emailondeck.com":     true,
	"mohmal.com":          true,
	"tempinbox.com":       true,
	"mailcatch.com":       true,
	"spamgourmet.com":     true,
	"anonymbox.com":       true,
	"deadaddress.com":     true,
	"mailnesia.com":       true,
	"tempr.email":         true,
	"discard.email":       true,
	"wegwerfmail.de":      true,
	"wegwerpmailadres.nl": true,
}

// EmailRejection explains why an email failed the business check.
type EmailRejection string

// Rejection reasons.
const (
	RejectionNone       EmailRejection = ""
	RejectionMalformed  EmailRejection = "malformed"
	RejectionFreeMail   EmailRejection = "free_mail"
	RejectionDisposable EmailRejection = "disposable"
)

// BusinessEmail reports whether an email is acceptable as a business contact
// address, with the rejection reason when it is not. The domain comparison is
// case-insensitive exact match.
func BusinessEmail(email string) (bool, EmailRejection) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false, RejectionMalformed
	}
	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))

	if disposableDomains[domain] {
		return false, RejectionDisposable
	}
	if freeMailDomains[domain] {
		return false, RejectionFreeMail
	}
	return true, RejectionNone
}

// IsFreeMailDomain reports whether a (lower-case) domain belongs to a consumer
// webmail provider. Such domains are excluded from company-identity
// derivation.
func IsFreeMailDomain(domain string) bool {
	return freeMailDomains[strings.ToLower(domain)]
}
