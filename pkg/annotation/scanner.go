package annotation

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"
)

// Feature records in the annotation flat files look like GenBank feature
// blocks. A marker line (usually "CDS") opens a record and a blank line
// closes it; qualifier lines such as /gene="dnaA_2" and /product="..." sit
// between. Product text may run over several lines, with the closing quote
// on a later line.

var (
	geneRe    = regexp.MustCompile(`/gene="([^"]+)"`)
	productRe = regexp.MustCompile(`/product="(.*)`)
	suffixRe  = regexp.MustCompile(`_\d+$`)
)

// Counts maps a base gene name to how many times it was annotated in one
// file. Only genes with two or more copies survive the scan.
type Counts map[string]int

// Products maps a base gene name to the distinct product descriptions seen
// for it, restricted to the same multi-copy genes as Counts.
type Products map[string]map[string]bool

// BaseName collapses the numbered suffix annotation pipelines append to
// repeated gene names (dnaA_1, dnaA_2 -> dnaA). Names without a trailing
// _<digits> suffix come back unchanged, so the operation is idempotent.
func BaseName(gene string) string {
	return suffixRe.ReplaceAllString(gene, "")
}

type recordState struct {
	inRecord    bool
	gene        string
	geneSeen    bool
	desc        string
	inMultiline bool
}

// ScanReader runs the record state machine over one annotation stream and
// returns the per-file copy counts and product descriptions, both filtered
// to genes annotated more than once.
func ScanReader(r io.Reader, marker string) (Counts, Products, error) {
	counts := Counts{}
	products := Products{}

	var st recordState

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := sc.Text()
		stripped := strings.TrimSpace(line)

		// An open multiline product consumes the whole line: no marker,
		// qualifier or blank-line handling applies to it.
		if st.inRecord && st.inMultiline {
			frag := stripped
			if strings.Contains(frag, `"`) {
				st.inMultiline = false
				frag = strings.ReplaceAll(frag, `"`, "")
			}
			st.desc += " " + frag
			continue
		}

		if strings.HasPrefix(stripped, marker) {
			st = recordState{inRecord: true}
			continue
		}

		if !st.inRecord {
			continue
		}

		if m := geneRe.FindStringSubmatch(line); m != nil {
			st.gene = strings.TrimSpace(m[1])
			st.geneSeen = true
			base := BaseName(st.gene)
			counts[base]++
			// A product parsed on an earlier line is still pending.
			if st.desc != "" {
				addProduct(products, base, st.desc)
			}
		}

		// Not exclusive with the gene qualifier: both can sit on one line.
		if m := productRe.FindStringSubmatch(line); m != nil {
			rest := m[1]
			if q := strings.Index(rest, `"`); q >= 0 {
				st.desc = rest[:q]
				if st.geneSeen {
					addProduct(products, BaseName(st.gene), st.desc)
				}
			} else {
				st.desc = strings.TrimSpace(rest)
				st.inMultiline = true
			}
		}

		if stripped == "" {
			st.inRecord = false
		}
	}
	if err := sc.Err(); err != nil {
		return Counts{}, Products{}, err
	}

	// Single copies are not paralogs; drop them from both views.
	for base, n := range counts {
		if n < 2 {
			delete(counts, base)
			delete(products, base)
		}
	}

	return counts, products, nil
}

// ScanFile opens one annotation file and scans it. Callers decide whether a
// failure aborts anything; a failed file simply has no contribution.
func ScanFile(path string, marker string) (Counts, Products, error) {
	f, err := os.Open(path)
	if err != nil {
		return Counts{}, Products{}, err
	}
	defer f.Close()

	return ScanReader(f, marker)
}

func addProduct(products Products, base, desc string) {
	set, ok := products[base]
	if !ok {
		set = make(map[string]bool)
		products[base] = set
	}
	set[desc] = true
}
