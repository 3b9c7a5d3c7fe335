package auth

// Reason classifies why credential resolution failed.
type Reason string

const (
	// ReasonNoCredential means no bearer token was presented.
	ReasonNoCredential Reason = "NO_CREDENTIAL"
	// ReasonMalformed means the token could not be parsed.
	ReasonMalformed Reason = "MALFORMED"
	// ReasonSignatureInvalid means the token signature did not verify.
	ReasonSignatureInvalid Reason = "SIGNATURE_INVALID"
	// ReasonExpired means the token's validity window has passed.
	ReasonExpired Reason = "EXPIRED"
	// ReasonSubjectNotFound means the token verified but its subject no
	// longer exists in the user store.
	ReasonSubjectNotFound Reason = "SUBJECT_NOT_FOUND"
)

// Failure is the soft result of a failed credential resolution. It is data,
// not exceptional control flow: the middleware treats any Failure as an
// anonymous caller and lets the role gate decide the outcome.
type Failure struct {
	Reason Reason
}

func (f *Failure) Error() string {
	return "auth: " + string(f.Reason)
}
