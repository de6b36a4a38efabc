// Package graph holds the people of the dataset and their relations to
// companies, languages, universities, countries and industries.
//
// A Graph is built once by a single linear scan of the dataset and is
// read-only afterwards; all methods are safe for concurrent use.
package graph

import (
	"slices"
	"strings"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
	"github.com/OFFIS-RIT/peoplegraph/pkg/logger"
	"github.com/OFFIS-RIT/peoplegraph/pkg/normalize"
)

// Graph is a directed graph from people to attribute labels.
//
// Besides the per-person edges it keeps, per relation, a posting list of
// person positions for every attribute label. Positions are discovery
// order, so posting lists are sorted and evaluation emits people in the
// order they first appeared in the dataset.
type Graph struct {
	people []common.Person
	byID   map[string]int
	edges  []map[common.Relation][]string
	index  map[common.Relation]map[string][]int
	labels map[common.Relation][]string
}

// Stats summarizes a Graph.
type Stats struct {
	People int                     `json:"people"`
	Edges  map[common.Relation]int `json:"edges"`
	Labels map[common.Relation]int `json:"labels"`
}

// New builds a graph from dataset rows.
//
// Rows sharing an ID describe the same person: languages are merged and
// single-valued attributes keep the first non-blank value. Blank fields
// produce no edge.
func New(rows []common.Row) *Graph {
	g := &Graph{
		byID:   make(map[string]int),
		index:  make(map[common.Relation]map[string][]int),
		labels: make(map[common.Relation][]string),
	}
	for _, r := range common.Relations {
		g.index[r] = make(map[string][]int)
	}

	for i, row := range rows {
		id := row[common.ColumnID]
		if id == "" {
			logger.Warn("Skipping dataset row without id", "row", i+1, "name", row[common.ColumnName])
			continue
		}

		pos, ok := g.byID[id]
		if !ok {
			pos = len(g.people)
			g.byID[id] = pos
			g.people = append(g.people, common.Person{ID: id, Name: row[common.ColumnName], Languages: []string{}})
			g.edges = append(g.edges, make(map[common.Relation][]string))
		} else if g.people[pos].Name == "" {
			g.people[pos].Name = row[common.ColumnName]
		}

		for _, r := range common.Relations {
			if r.MultiValued() {
				for _, token := range normalize.SplitLanguages(row[r.Column()]) {
					g.addEdge(pos, r, token)
				}
				continue
			}
			g.addEdge(pos, r, row[r.Column()])
		}
	}

	for _, postings := range g.index {
		for label, list := range postings {
			if !slices.IsSorted(list) {
				slices.Sort(list)
				postings[label] = list
			}
		}
	}

	logger.Debug("Built relationship graph", "people", len(g.people), "rows", len(rows))
	return g
}

func (g *Graph) addEdge(pos int, r common.Relation, label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return
	}

	existing := g.edges[pos][r]
	if slices.Contains(existing, label) {
		return
	}
	if !r.MultiValued() && len(existing) > 0 {
		logger.Warn("Ignoring conflicting value for duplicate person",
			"id", g.people[pos].ID,
			"relation", r,
			"kept", existing[0],
			"ignored", label,
		)
		return
	}

	g.edges[pos][r] = append(existing, label)
	if _, ok := g.index[r][label]; !ok {
		g.labels[r] = append(g.labels[r], label)
	}
	g.index[r][label] = append(g.index[r][label], pos)
	g.setAttribute(pos, r, label)
}

func (g *Graph) setAttribute(pos int, r common.Relation, label string) {
	p := &g.people[pos]
	switch r {
	case common.RelationSpeaks:
		p.Languages = append(p.Languages, label)
	case common.RelationWorksAt:
		p.Company = label
	case common.RelationWorksIn:
		p.Industry = label
	case common.RelationLivesIn:
		p.Country = label
	case common.RelationStudiedAt:
		p.University = label
	}
}

// Len returns the number of people.
func (g *Graph) Len() int {
	return len(g.people)
}

// People returns every person in discovery order.
func (g *Graph) People() []common.Person {
	out := make([]common.Person, len(g.people))
	for i := range g.people {
		out[i] = clonePerson(g.people[i])
	}
	return out
}

// Person returns the person with the given ID.
func (g *Graph) Person(id string) (common.Person, bool) {
	pos, ok := g.byID[id]
	if !ok {
		return common.Person{}, false
	}
	return clonePerson(g.people[pos]), true
}

// Edges returns the targets of the outgoing edges of relation r of the person with the given ID.
func (g *Graph) Edges(id string, r common.Relation) []string {
	pos, ok := g.byID[id]
	if !ok {
		return nil
	}
	return slices.Clone(g.edges[pos][r])
}

// Labels returns the distinct targets of relation r in discovery order.
func (g *Graph) Labels(r common.Relation) []string {
	return slices.Clone(g.labels[r])
}

// Stats returns counts of people, edges and distinct labels per relation.
func (g *Graph) Stats() Stats {
	s := Stats{
		People: len(g.people),
		Edges:  make(map[common.Relation]int, len(common.Relations)),
		Labels: make(map[common.Relation]int, len(common.Relations)),
	}
	for _, r := range common.Relations {
		s.Labels[r] = len(g.labels[r])
		for _, postings := range g.index[r] {
			s.Edges[r] += len(postings)
		}
	}
	return s
}

func clonePerson(p common.Person) common.Person {
	p.Languages = slices.Clone(p.Languages)
	if p.Languages == nil {
		p.Languages = []string{}
	}
	return p
}
