package registry

import (
	"context"
	"regexp"
)

// serialFormat is the manufacturer serial shape we accept: 10-20 alphanumerics.
var serialFormat = regexp.MustCompile(`^[A-Za-z0-9]{10,20}$`)

// StubVerifier is a placeholder used when no registry endpoint is configured.
// It only validates the serial format; it cannot detect claims already lodged
// with the regulator, so every well-formed serial passes.
//
// TODO: replace with the Client pointed at the production REC Registry API
// once credentials are provisioned.
type StubVerifier struct{}

func NewStubVerifier() *StubVerifier {
	return &StubVerifier{}
}

func (s *StubVerifier) Verify(ctx context.Context, serials []string) ([]SerialResult, error) {
	results := make([]SerialResult, 0, len(serials))
	for _, serial := range serials {
		ok := serialFormat.MatchString(serial)
		results = append(results, SerialResult{
			SerialNumber:     serial,
			ExistsInRegistry: ok,
			AlreadyClaimed:   false,
			CECApproved:      ok,
		})
	}
	return results, nil
}
