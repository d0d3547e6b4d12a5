// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package annotree_test

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phymig/annotree"
)

const blob = `tree TREE1 = [&R] ((A[&country="France",height_95%_HPD={0.1,0.3}]:0.5,'B c'[&country="Spain"]:0.7)[&country="France"]:0.2,C:[&country=Italy]1.1)[&country="France"];`

type nodeData struct {
	parent int
	taxon  string
	brLen  float64
	height float64
	time   float64
	traits map[string]string
}

func TestReadNewick(t *testing.T) {
	tr, err := annotree.ReadNewick(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	tr.SetAbsoluteTime(2020)

	want := []nodeData{
		{parent: -1, height: 0, time: 2018.9, traits: map[string]string{"country": "France"}},
		{parent: 0, brLen: 0.2, height: 0.2, time: 2019.1, traits: map[string]string{"country": "France"}},
		{parent: 1, taxon: "A", brLen: 0.5, height: 0.7, time: 2019.6, traits: map[string]string{"country": "France", "height_95%_HPD": "{0.1,0.3}"}},
		{parent: 1, taxon: "B c", brLen: 0.7, height: 0.9, time: 2019.8, traits: map[string]string{"country": "Spain"}},
		{parent: 0, taxon: "C", brLen: 1.1, height: 1.1, time: 2020, traits: map[string]string{"country": "Italy"}},
	}
	testTree(t, tr, want)

	if h := tr.TreeHeight(); math.Abs(h-1.1) > 1e-9 {
		t.Errorf("tree height: got %.6f, want %.6f", h, 1.1)
	}
	terms := []string{"A", "B c", "C"}
	if got := tr.Terms(); !reflect.DeepEqual(got, terms) {
		t.Errorf("terms: got %v, want %v", got, terms)
	}
	if got := tr.Children(1); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("children of 1: got %v, want %v", got, []int{2, 3})
	}
}

func testTree(t testing.TB, tr *annotree.Tree, want []nodeData) {
	t.Helper()

	if tr.Len() != len(want) {
		t.Fatalf("nodes: got %d, want %d", tr.Len(), len(want))
	}
	for _, id := range tr.Nodes() {
		w := want[id]
		if p := tr.Parent(id); p != w.parent {
			t.Errorf("node %d: parent: got %d, want %d", id, p, w.parent)
		}
		if tx := tr.Taxon(id); tx != w.taxon {
			t.Errorf("node %d: taxon: got %q, want %q", id, tx, w.taxon)
		}
		if l := tr.BrLen(id); math.Abs(l-w.brLen) > 1e-9 {
			t.Errorf("node %d: branch length: got %.6f, want %.6f", id, l, w.brLen)
		}
		if h := tr.Height(id); math.Abs(h-w.height) > 1e-9 {
			t.Errorf("node %d: height: got %.6f, want %.6f", id, h, w.height)
		}
		if tm := tr.Time(id); math.Abs(tm-w.time) > 1e-9 {
			t.Errorf("node %d: time: got %.6f, want %.6f", id, tm, w.time)
		}
		for k, v := range w.traits {
			if g, ok := tr.Trait(id, k); !ok || g != v {
				t.Errorf("node %d: trait %q: got %q, want %q", id, k, g, v)
			}
		}
		if len(tr.TraitKeys(id)) != len(w.traits) {
			t.Errorf("node %d: trait keys: got %v, want %d keys", id, tr.TraitKeys(id), len(w.traits))
		}
	}
}

func TestReadNewickPlain(t *testing.T) {
	tr, err := annotree.ReadNewick(strings.NewReader("(A:1,(B:1,C:2):1);\n"))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	if tr.HasTraits(0) {
		t.Errorf("root: unexpected traits %v", tr.TraitKeys(0))
	}
	tr.SetAbsoluteTime(10)
	if !tr.Calibrated() {
		t.Errorf("tree should be calibrated")
	}
	// C is the most recent terminal
	if tm := tr.Time(4); tm != 10 {
		t.Errorf("time of C: got %.6f, want 10", tm)
	}
	if tm := tr.Time(0); tm != 7 {
		t.Errorf("time of root: got %.6f, want 7", tm)
	}
}

func TestReadNewickErrors(t *testing.T) {
	tests := map[string]string{
		"empty":              "  ",
		"missing semicolon":  "(A:1,B:2)",
		"unbalanced":         "((A:1,B:2);",
		"bad branch length":  "(A:x,B:2);",
		"unterminated quote": "('A:1,B:2);",
		"unterminated note":  "(A[&country=\"France\":1,B:2);",
	}
	for name, in := range tests {
		if _, err := annotree.ReadNewick(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestAdd(t *testing.T) {
	tr := annotree.New()
	root, err := tr.Add(-1, "", 0)
	if err != nil {
		t.Fatalf("unable to add root: %v", err)
	}
	a, _ := tr.Add(root, "a", 2)
	if _, err := tr.Add(-1, "", 0); err == nil {
		t.Errorf("adding a second root: expecting error")
	}
	if _, err := tr.Add(10, "x", 1); err == nil {
		t.Errorf("adding to an undefined parent: expecting error")
	}
	b, _ := tr.Add(a, "b", 3)
	if h := tr.Height(b); h != 5 {
		t.Errorf("height: got %.6f, want 5", h)
	}
	tr.SetTrait(b, "country", "Peru")
	if v, ok := tr.Trait(b, "country"); !ok || v != "Peru" {
		t.Errorf("trait: got %q, want %q", v, "Peru")
	}
	if !tr.IsTerm(b) || tr.IsTerm(a) {
		t.Errorf("terminals: got a=%v b=%v", tr.IsTerm(a), tr.IsTerm(b))
	}
}

func TestStats(t *testing.T) {
	tr, err := annotree.ReadNewick(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	s := tr.Stats()
	if s.Terms != 3 || s.Internal != 2 {
		t.Errorf("stats: got %d terms and %d internal nodes, want 3 and 2", s.Terms, s.Internal)
	}
	if !s.Bifurcating {
		t.Errorf("stats: tree should be bifurcating")
	}
	if math.Abs(s.Length-2.5) > 1e-9 {
		t.Errorf("stats: length: got %.6f, want %.6f", s.Length, 2.5)
	}
	keys := []string{"country", "height_95%_HPD"}
	if !reflect.DeepEqual(s.Keys, keys) {
		t.Errorf("stats: keys: got %v, want %v", s.Keys, keys)
	}

	var w bytes.Buffer
	if err := s.Write(&w); err != nil {
		t.Fatalf("unable to write stats: %v", err)
	}
	if !strings.Contains(w.String(), "strictly bifurcating") {
		t.Errorf("stats output: got %q", w.String())
	}
}

func TestNewick(t *testing.T) {
	tr, err := annotree.ReadNewick(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}

	var w bytes.Buffer
	if err := tr.Newick(&w, 1); err != nil {
		t.Fatalf("unable to write tree: %v", err)
	}
	t.Logf("output:\n%s", w.String())

	nt, err := annotree.ReadNewick(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	if !reflect.DeepEqual(nt.Terms(), tr.Terms()) {
		t.Errorf("terms: got %v, want %v", nt.Terms(), tr.Terms())
	}
	for _, id := range tr.Nodes() {
		if math.Abs(nt.Height(id)-tr.Height(id)) > 1e-9 {
			t.Errorf("node %d: height: got %.6f, want %.6f", id, nt.Height(id), tr.Height(id))
		}
	}
}

func TestTimeTree(t *testing.T) {
	tr, err := annotree.ReadNewick(strings.NewReader("((a:1,b:2):1,c:3);"))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}

	c, err := tr.TimeTree("outbreak")
	if err != nil {
		t.Fatalf("unable to build time tree: %v", err)
	}
	if ls := c.Names(); len(ls) != 1 {
		t.Fatalf("time tree names: got %v, want 1 tree", ls)
	}
	tt := c.Tree(c.Names()[0])
	if n := len(tt.Nodes()); n != tr.Len() {
		t.Errorf("time tree nodes: got %d, want %d", n, tr.Len())
	}
}
