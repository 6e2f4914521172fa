package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ParseJSON reads subscription-shaped objects, either as a bare array
//
//	[
//	  {"name": "Netflix", "provider": "Netflix Inc", "category": "Entertainment",
//	   "startDate": "2024-01-15", "billingCycle": "monthly", "amount": 15.99,
//	   "currency": "USD", "activeStatus": true, "autoRenew": true}
//	]
//
// or wrapped in an object with a "subscriptions" array, which is what the list
// command emits with --output json. Other keys of the wrapper are ignored.
func ParseJSON(path string) ([]ImportRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		var records []ImportRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		return records, nil
	}

	var wrapped struct {
		Subscriptions *[]ImportRecord `json:"subscriptions"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if wrapped.Subscriptions == nil {
		return nil, errors.New(`parsing JSON: object has no "subscriptions" array`)
	}
	return *wrapped.Subscriptions, nil
}

func init() {
	RegisterParser("json", ParserFunc(ParseJSON))
}
