package postgres

import "encoding/json"

// rawJSON turns a scanned json/jsonb column into a RawMessage, mapping SQL
// NULL to JSON null so responses stay well-formed.
func rawJSON(b []byte) json.RawMessage {
	if b == nil {
		return json.RawMessage("null")
	}
	return json.RawMessage(b)
}

// jsonParam passes a RawMessage as text; lib/pq would encode []byte as bytea.
func jsonParam(m json.RawMessage) string {
	return string(m)
}
