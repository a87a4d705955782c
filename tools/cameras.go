package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/natexcvi/speedcam-llm/cameras"
	log "github.com/sirupsen/logrus"
)

const (
	zipcodeDescription = "Get all speed cameras in a specific zipcode. " +
		"Use this when the user asks about cameras in a particular area or zipcode."
	streetSearchDescription = "Search for speed cameras by street name within a specific zipcode. " +
		"Use this when the user asks about cameras on a particular street. " +
		"IMPORTANT: Always use standard street abbreviations: Ave (not Avenue), St (not Street), " +
		"Blvd (not Boulevard), Dr (not Drive), Rd (not Road), Ln (not Lane), Ct (not Court), Pl (not Place)."
)

// LookupResult is the payload a successful lookup hands back to the model.
type LookupResult struct {
	Success bool             `json:"success"`
	Street  string           `json:"street,omitempty"`
	Zipcode string           `json:"zipcode"`
	Count   int              `json:"count"`
	Cameras []cameras.Record `json:"cameras"`
}

func newLookupResult(street, zipcode string, records []cameras.Record) (json.RawMessage, error) {
	if records == nil {
		records = []cameras.Record{}
	}
	return json.Marshal(&LookupResult{
		Success: true,
		Street:  street,
		Zipcode: zipcode,
		Count:   len(records),
		Cameras: records,
	})
}

// NewCameraTool builds the tool backing fn. Errors returned by the tool wrap
// ErrMissingParameter, ErrInvalidArguments or one of the cameras errors.
func NewCameraTool(fn Function, finder cameras.Finder) (Tool, error) {
	switch fn {
	case FunctionGetCamerasByZipcode:
		return NewGenericTool(fn.String(), zipcodeDescription, ReflectArgsSchema(&ZipcodeArgs{}),
			func(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
				args, err := ParseZipcodeArgs(raw)
				if err != nil {
					return nil, err
				}
				records, err := finder.ByZipcode(ctx, args.Zipcode)
				if err != nil {
					return nil, err
				}
				log.Debugf("found %d cameras in %s", len(records), args.Zipcode)
				return newLookupResult("", args.Zipcode, records)
			}), nil
	case FunctionSearchCamerasByStreet:
		return NewGenericTool(fn.String(), streetSearchDescription, ReflectArgsSchema(&StreetSearchArgs{}),
			func(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
				args, err := ParseStreetSearchArgs(raw)
				if err != nil {
					return nil, err
				}
				records, err := finder.ByStreet(ctx, args.Street, args.Zipcode)
				if err != nil {
					return nil, err
				}
				log.Debugf("found %d cameras on %s in %s", len(records), args.Street, args.Zipcode)
				return newLookupResult(args.Street, args.Zipcode, records)
			}), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, fn)
	}
}
