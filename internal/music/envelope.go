package music

import "encoding/json"

// Envelope is the result of every operation.
// A successful envelope carries either Results or Location, a failed one carries Error.
type Envelope struct {
	Success  bool      `json:"success"`
	Results  []Record  `json:"results,omitempty"`
	Location *Location `json:"location,omitempty"`
	Error    string    `json:"error,omitempty"`
}

func ResultsEnvelope(records []Record) Envelope {
	if records == nil {
		records = []Record{}
	}
	return Envelope{Success: true, Results: records}
}

func LocationEnvelope(location Location) Envelope {
	return Envelope{Success: true, Location: &location}
}

func Failure(err error) Envelope {
	return Envelope{Success: false, Error: err.Error()}
}

func FailureMessage(message string) Envelope {
	return Envelope{Success: false, Error: message}
}

// MarshalJSON keeps an empty result list as [] on success
func (e Envelope) MarshalJSON() ([]byte, error) {
	type wire struct {
		Success  bool      `json:"success"`
		Results  *[]Record `json:"results,omitempty"`
		Location *Location `json:"location,omitempty"`
		Error    *string   `json:"error,omitempty"`
	}

	out := wire{Success: e.Success}
	switch {
	case !e.Success:
		message := e.Error
		out.Error = &message
	case e.Location != nil:
		out.Location = e.Location
	default:
		results := e.Results
		if results == nil {
			results = []Record{}
		}
		out.Results = &results
	}
	return json.Marshal(out)
}
