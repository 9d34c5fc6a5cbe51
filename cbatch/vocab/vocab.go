// Package vocab loads the fixed word vocabulary shared by every document
// of a corpus. Ids are assigned by file line order starting at 1; id 0 is
// reserved as the padding sentinel and is never mapped to a word.
package vocab

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/corpusbatch/cbatch/common"
)

// Vocabulary maps a case-folded word to its positive integer id.
// Built once at load time and shared by reference afterwards.
type Vocabulary map[string]int

// Load parses a flat word-list file (one word per line, no header) into a
// Vocabulary, assigning ids 1..N in line order.
func Load(path string) (Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: vocabulary file %s: %v", common.ErrMissingResource, path, err)
	}
	defer f.Close()

	v := make(Vocabulary)
	scanner := bufio.NewScanner(f)
	id := 1
	for scanner.Scan() {
		v[scanner.Text()] = id
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading vocabulary file %s: %v", common.ErrMissingResource, path, err)
	}

	return v, nil
}

// Size returns the number of words, which is also the largest assigned id.
func (v Vocabulary) Size() int {
	return len(v)
}
