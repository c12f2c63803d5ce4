package semconv

import (
	"go.opentelemetry.io/otel/attribute"
)

const (
	// ChainIDKey represents the chain ID.
	//
	// Type: string
	// RequirementLevel: Recommended
	// Stability: Development
	// Examples: "peggy-1", "1337"
	ChainIDKey = attribute.Key("chain_id")

	// RelayKindKey represents the kind of a relay operation.
	//
	// Type: string
	// RequirementLevel: Recommended
	// Stability: Development
	// Examples: "valsets", "batches", "events"
	RelayKindKey = attribute.Key("relay_kind")

	// ContractKey represents the address of the bridge contract.
	//
	// Type: string
	// RequirementLevel: Recommended
	// Stability: Development
	// Examples: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	ContractKey = attribute.Key("contract")

	// EventNameKey represents the name of a contract event.
	//
	// Type: string
	// RequirementLevel: Optional
	// Stability: Development
	// Examples: "SendToCosmosEvent"
	EventNameKey = attribute.Key("event_name")

	// FromBlockKey represents the first Ethereum block of a scanned range.
	//
	// Type: int
	// RequirementLevel: Recommended
	// Stability: Development
	// Examples: 1000
	FromBlockKey = attribute.Key("block.from")

	// ToBlockKey represents the last Ethereum block of a scanned range.
	//
	// Type: int
	// RequirementLevel: Recommended
	// Stability: Development
	// Examples: 1049
	ToBlockKey = attribute.Key("block.to")

	// NextBlockKey represents the next block to be scanned after a successful scan.
	//
	// Type: int
	// RequirementLevel: Optional
	// Stability: Development
	// Examples: 1050
	NextBlockKey = attribute.Key("block.next")

	// LogCountKey represents the number of logs returned by a query.
	//
	// Type: int
	// RequirementLevel: Optional
	// Stability: Development
	// Examples: 3
	LogCountKey = attribute.Key("log.count")
)

// AttributeGroup prefixes the given key to all attributes.
//
// For example, if the key is "foo" and the key of an attribute is "bar", the new key will be "foo.bar".
func AttributeGroup(key string, attributes ...attribute.KeyValue) []attribute.KeyValue {
	newAttrs := make([]attribute.KeyValue, 0, len(attributes))
	for _, attr := range attributes {
		newAttrs = append(newAttrs, attribute.KeyValue{
			Key:   attribute.Key(key + "." + string(attr.Key)),
			Value: attr.Value,
		})

	}
	return newAttrs
}
