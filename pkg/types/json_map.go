package types

// JSONMap holds loosely structured JSON objects such as the customer-info
// snapshot captured at checkout.
type JSONMap map[string]any
