package dispatch

import (
	"fmt"

	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
)

// RequestKind discriminates the notification payload variants.
type RequestKind string

const (
	KindNewCase        RequestKind = "new_case"
	KindDocumentSigned RequestKind = "document_signed"
)

// NewCaseData carries the fields rendered into a new-case alert.
type NewCaseData struct {
	DeceasedName    string `json:"deceasedName"`
	NextOfKinName   string `json:"nextOfKinName"`
	LocationOfDeath string `json:"locationOfDeath"`
	CaseID          string `json:"caseId"`
}

// DocumentSignedData carries the fields rendered into a document-signed alert.
type DocumentSignedData struct {
	SignerName   string `json:"signerName"`
	DocumentType string `json:"documentType"`
	DeceasedName string `json:"deceasedName"`
	CaseID       string `json:"caseId"`
}

// NotificationRequest is the tagged union handed to the dispatcher. Exactly
// one of the payload fields matching Kind is set. Requests are built per
// dispatch and never persisted.
type NotificationRequest struct {
	Kind           RequestKind
	NewCase        *NewCaseData
	DocumentSigned *DocumentSignedData
}

// NewCaseRequest builds a new-case notification request.
func NewCaseRequest(data NewCaseData) NotificationRequest {
	return NotificationRequest{Kind: KindNewCase, NewCase: &data}
}

// DocumentSignedRequest builds a document-signed notification request.
func DocumentSignedRequest(data DocumentSignedData) NotificationRequest {
	return NotificationRequest{Kind: KindDocumentSigned, DocumentSigned: &data}
}

// Body renders the SMS text for the request kind.
func (r NotificationRequest) Body() (string, error) {
	switch r.Kind {
	case KindNewCase:
		if r.NewCase == nil {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "new case payload required")
		}
		d := r.NewCase
		return fmt.Sprintf(
			"New case: %s. Next of kin: %s. Location: %s. Case ref: %s.",
			orUnknown(d.DeceasedName), orUnknown(d.NextOfKinName), orUnknown(d.LocationOfDeath), d.CaseID,
		), nil
	case KindDocumentSigned:
		if r.DocumentSigned == nil {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "document signed payload required")
		}
		d := r.DocumentSigned
		return fmt.Sprintf(
			"Document signed: %s signed the %s for %s. Case ref: %s.",
			orUnknown(d.SignerName), orUnknown(d.DocumentType), orUnknown(d.DeceasedName), d.CaseID,
		), nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown notification kind")
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
