package query

// FareQuote can be looked up by station identifiers or by display names
type FareQuote struct {
	OriginRef      string
	DestinationRef string

	OriginName      string
	DestinationName string
}
