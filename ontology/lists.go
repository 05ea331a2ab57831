package ontology

import (
	"strconv"

	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
)

// listNode names the i-th cell of the list that owner points to through pred.
// Names depend only on (owner, pred, i) so rewriting a list reuses its cells.
func listNode(owner, pred resource.Resource, i int) resource.Resource {
	return resource.NewURI("urn:semtax:list:" + taxonomy.HashTriple(owner, pred, rdfNil).String() + ":" + strconv.Itoa(i))
}

// writeList replaces whatever list owner currently has through pred with
// items, tagging every cell with prov.
func writeList(tx *taxonomy.Taxonomy, owner, pred resource.Resource, items []resource.Resource, prov taxonomy.Provenance) error {
	for _, item := range items {
		if item.IsZero() {
			return &taxonomy.ModelError{Component: "object"}
		}
	}
	if owner.IsZero() {
		return &taxonomy.ModelError{Component: "subject"}
	}
	removeList(tx, owner, pred)

	if len(items) == 0 {
		return addEntry(tx, owner, pred, rdfNil, prov)
	}
	if err := addEntry(tx, owner, pred, listNode(owner, pred, 0), prov); err != nil {
		return err
	}
	for i, item := range items {
		cell := listNode(owner, pred, i)
		next := rdfNil
		if i+1 < len(items) {
			next = listNode(owner, pred, i+1)
		}
		if err := addEntry(tx, cell, rdfFirst, item, prov); err != nil {
			return err
		}
		if err := addEntry(tx, cell, rdfRest, next, prov); err != nil {
			return err
		}
	}
	return nil
}

// removeList deletes every list owner has through pred, cells included.
func removeList(tx *taxonomy.Taxonomy, owner, pred resource.Resource) {
	for _, head := range tx.Objects(owner, pred) {
		tx.RemoveTriple(owner, pred, head)
		visited := resource.NewSet()
		for cell := head; !cell.Equal(rdfNil) && visited.Add(cell); {
			for _, first := range tx.Objects(cell, rdfFirst) {
				tx.RemoveTriple(cell, rdfFirst, first)
			}
			rest := tx.Objects(cell, rdfRest)
			for _, r := range rest {
				tx.RemoveTriple(cell, rdfRest, r)
			}
			if len(rest) == 0 {
				break
			}
			cell = rest[0]
		}
	}
}

// readList decodes the list starting at head. Malformed or cyclic lists are
// truncated at the first repeated or dangling cell.
func readList(tx *taxonomy.Taxonomy, head resource.Resource) []resource.Resource {
	var items []resource.Resource
	visited := resource.NewSet()
	for cell := head; !cell.IsZero() && !cell.Equal(rdfNil) && visited.Add(cell); {
		firsts := tx.Objects(cell, rdfFirst)
		if len(firsts) == 0 {
			break
		}
		items = append(items, firsts[0])
		rest := tx.Objects(cell, rdfRest)
		if len(rest) == 0 {
			break
		}
		cell = rest[0]
	}
	return items
}

// readOwnedList decodes the first list owner has through pred.
func readOwnedList(tx *taxonomy.Taxonomy, owner, pred resource.Resource) ([]resource.Resource, bool) {
	heads := tx.Objects(owner, pred)
	if len(heads) == 0 {
		return nil, false
	}
	return readList(tx, heads[0]), true
}
