package dropboxsign

// Envelope is the provider callback body. The provider nests the signature
// request under the event.
type Envelope struct {
	Event Event `json:"event"`
}

// Event carries the callback type and the affected signature request.
type Event struct {
	EventType        string           `json:"event_type"`
	EventHash        string           `json:"event_hash"`
	SignatureRequest SignatureRequest `json:"signature_request"`
}

// SignatureRequest is the provider's view of one signing flow. The metadata
// map is written by us when the request is created, so case_id and home_id
// are our own keys round-tripped through the provider.
type SignatureRequest struct {
	Metadata   Metadata    `json:"metadata"`
	Signatures []Signature `json:"signatures"`
}

// Metadata is the custom payload attached at request creation time.
type Metadata struct {
	HomeID       string `json:"home_id"`
	CaseID       string `json:"case_id"`
	DocumentType string `json:"document_type"`
	DeceasedName string `json:"deceased_name"`
}

// Signature identifies one signer on the request.
type Signature struct {
	SignerName string `json:"signer_name"`
}

// Provider event types the relay switches on.
const (
	EventSigned   = "signature_request_signed"
	EventViewed   = "signature_request_viewed"
	EventSent     = "signature_request_sent"
	EventDeclined = "signature_request_declined"
)

// SignerName returns the first signer's name, if any.
func (r SignatureRequest) SignerName() string {
	if len(r.Signatures) == 0 {
		return ""
	}
	return r.Signatures[0].SignerName
}
