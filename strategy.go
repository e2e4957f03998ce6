package showreel

// Strategy names, in default cascade priority order. Domain configurations
// may reorder them via DomainConfig.Methods.
const (
	StrategyDomainJSON  = "domain-json-decoder"
	StrategyLegacyField = "legacy-field-decoder"
	StrategyDOM         = "dom-decoder"
	StrategyGeneric     = "generic-decoder"
)

// Strategy is one self-contained extraction algorithm. Extract is a pure
// function of its inputs: it returns a partial record, or an ENOTFOUND error
// when the page holds no data this strategy understands. Strategies never
// panic past their boundary; internal parse failures surface as ordinary
// errors that the cascade records and skips.
type Strategy interface {
	// Name returns the strategy's identifier (e.g., "domain-json-decoder").
	Name() string

	// Extract attempts to build a record from the page.
	Extract(markup, url string, store PatternStore) (*Record, error)
}
