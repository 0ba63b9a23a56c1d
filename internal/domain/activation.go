// File: internal/domain/activation.go
package domain

import "encoding/json"

// Operation names one of the four provider actions the proxy exposes.
// The string value is also the provider's "action" parameter.
type Operation string

const (
	OpGetNumber    Operation = "getNumber"
	OpGetSms       Operation = "getSms"
	OpCancelNumber Operation = "cancelNumber"
	OpGetStatus    Operation = "getStatus"
)

// Operations lists every supported operation in route order.
var Operations = []Operation{OpGetNumber, OpGetSms, OpCancelNumber, OpGetStatus}

// Valid reports whether o is one of the supported operations.
func (o Operation) Valid() bool {
	switch o {
	case OpGetNumber, OpGetSms, OpCancelNumber, OpGetStatus:
		return true
	}
	return false
}

// RequiresActivation reports whether the operation acts on an existing activation.
func (o Operation) RequiresActivation() bool {
	return o == OpGetSms || o == OpCancelNumber || o == OpGetStatus
}

// ActivationRequest is a validated inbound call. Only the fields relevant to
// Operation are set: Country/Service for getNumber (empty means "use the
// default"), Activation for everything else.
type ActivationRequest struct {
	Operation  Operation
	Country    string
	Service    string
	Activation string
}

// UpstreamResult is the provider's JSON body, kept byte-for-byte.
type UpstreamResult = json.RawMessage
