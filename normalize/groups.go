package normalize

import (
	"sort"

	"github.com/antonpk1/excalidraw-mcp-app/geometry"
	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

// autoGroupNested tags each shape that fully contains other boundable
// elements, plus everything it contains, with a fresh shared group id. A
// user clicking any member then selects and moves the whole visual cluster.
// Group ids are appended, never replaced, so multi-level containment leaves
// an element tagged once per enclosing container, outermost group first.
func (p *Pipeline) autoGroupNested(els []*scene.Element) {
	shapes := make([]*scene.Element, 0, len(els))
	for _, el := range els {
		if el.IsShape() {
			shapes = append(shapes, el)
		}
	}
	// Largest first: outer containers append their group id before the
	// clusters nested inside them.
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].Bounds().Area() > shapes[j].Bounds().Area()
	})

	for _, parent := range shapes {
		pb := parent.Bounds()
		var members []*scene.Element
		for _, el := range els {
			if el.ID == parent.ID || !boundable(el) {
				continue
			}
			b := el.Bounds()
			if b.Area() < pb.Area() && geometry.IsFullyInside(b, pb) {
				members = append(members, el)
			}
		}
		if len(members) == 0 || alreadyGrouped(parent, members, els) {
			continue
		}
		gid := p.newGroupID()
		parent.GroupIDs = append(parent.GroupIDs, gid)
		for _, m := range members {
			m.GroupIDs = append(m.GroupIDs, gid)
		}
	}
}

// alreadyGrouped reports whether a previous pass grouped this exact cluster:
// some group id on the parent is carried by every member and by nothing
// outside the cluster. Membership must match exactly, otherwise an enclosing
// container's id would suppress the inner cluster's own group. Without this
// check, re-normalizing a scene would stack a new group id on every run.
func alreadyGrouped(parent *scene.Element, members []*scene.Element, els []*scene.Element) bool {
	cluster := map[string]bool{parent.ID: true}
	for _, m := range members {
		cluster[m.ID] = true
	}
	for _, gid := range parent.GroupIDs {
		if coversCluster(gid, cluster, members, els) {
			return true
		}
	}
	return false
}

func coversCluster(gid string, cluster map[string]bool, members []*scene.Element, els []*scene.Element) bool {
	for _, m := range members {
		if !hasGroup(m, gid) {
			return false
		}
	}
	for _, el := range els {
		if hasGroup(el, gid) && !cluster[el.ID] {
			return false
		}
	}
	return true
}

func hasGroup(el *scene.Element, gid string) bool {
	for _, g := range el.GroupIDs {
		if g == gid {
			return true
		}
	}
	return false
}
