package tone

import (
	"errors"
	"fmt"
)

// ErrNodeCount marks a preset candidate whose graph does not hold
// exactly five nodes. Such candidates are rejected quietly; they are
// truncated or foreign fragments, not errors.
var ErrNodeCount = errors.New("audio graph does not hold exactly 5 nodes")

// ErrMissingNode marks a preset candidate lacking one of the required
// category nodes. Callers surface this as a diagnostic.
var ErrMissingNode = errors.New("required node missing")

// ErrNoGraph marks a preset candidate with no audioGraph object at all.
// Unlike a wrong node count this is a malformed preset, not a truncated
// fragment, and callers surface it as a diagnostic.
var ErrNoGraph = errors.New("no audioGraph object")

// Fixed module processing orders per product family, asserted from the
// factory preset corpus rather than derived from the connection graph.
var (
	mustangOrder = [5]string{"stomp", "mod", "amp", "delay", "reverb"}
	rumbleOrder  = [5]string{"stomp", "mod", "amp", "eq", "delay"}
)

// rumbleProductID selects the Rumble node order; every other product id
// uses the Mustang order.
const rumbleProductID = "rumble-lt"

// CanonicalizePreset normalizes a preset document in place so that
// semantically equivalent variants serialize identically:
//
//   - the verbose connection list is dropped (the node order is fixed
//     per family, so connections carry no information),
//   - nodes are reordered into the family's fixed processing order,
//   - a passthrough node's parameter block is cleared, since bypass
//     flags are irrelevant on an empty slot,
//   - FenderId values have range-specific prefixes/suffixes stripped.
//
// The candidate must not be reused after a non-nil error.
func CanonicalizePreset(candidate map[string]interface{}) error {
	graph, ok := candidate["audioGraph"].(map[string]interface{})
	if !ok {
		return ErrNoGraph
	}
	nodes, ok := graph["nodes"].([]interface{})
	if !ok || len(nodes) != 5 {
		return ErrNodeCount
	}

	delete(graph, "connections")

	order := mustangOrder
	if info, ok := candidate["info"].(map[string]interface{}); ok {
		if productID, _ := info["product_id"].(string); productID == rumbleProductID {
			order = rumbleOrder
		}
	}

	reordered := make([]interface{}, 5)
	for i, want := range order {
		node := findNode(nodes, want)
		if node == nil {
			return fmt.Errorf("slot %d (%s): %w", i, want, ErrMissingNode)
		}
		if fenderID, _ := node["FenderId"].(string); fenderID == PassthruFenderID {
			node["dspUnitParameters"] = map[string]interface{}{}
		}
		if fenderID, ok := node["FenderId"].(string); ok {
			node["FenderId"] = FilterFenderID(fenderID)
		}
		reordered[i] = node
	}
	graph["nodes"] = reordered
	return nil
}

func findNode(nodes []interface{}, nodeID string) map[string]interface{} {
	for _, n := range nodes {
		node, ok := n.(map[string]interface{})
		if !ok {
			continue
		}
		if id, _ := node["nodeId"].(string); id == nodeID {
			return node
		}
	}
	return nil
}
