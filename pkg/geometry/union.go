package geometry

import "github.com/df07/go-sdf-raytracer/pkg/core"

// UnionNode combines child nodes into one shape by keeping the nearest hit
type UnionNode struct {
	Nodes []core.Node
}

// NewUnion creates a union over the given children
func NewUnion(nodes ...core.Node) *UnionNode {
	return &UnionNode{Nodes: nodes}
}

// Add appends a child node
func (u *UnionNode) Add(node core.Node) {
	u.Nodes = append(u.Nodes, node)
}

// Hit returns the nearest hit among all children.
// On equal distances the earlier child wins.
func (u *UnionNode) Hit(ray core.Ray) (*core.Hit, bool) {
	var closestHit *core.Hit

	for _, node := range u.Nodes {
		hit, isHit := node.Hit(ray)
		if !isHit {
			continue
		}
		if closestHit == nil || hit.Distance < closestHit.Distance {
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// CountPrimitives returns the number of leaf nodes below node
func CountPrimitives(node core.Node) int {
	union, ok := node.(*UnionNode)
	if !ok {
		return 1
	}
	count := 0
	for _, child := range union.Nodes {
		count += CountPrimitives(child)
	}
	return count
}
