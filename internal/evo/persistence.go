package evo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
)

var (
	ErrNonFiniteGene          = errors.New("gene value is not finite")
	ErrPopulationSizeMismatch = errors.New("population size mismatch")
)

// GeneTableDoc maps a member index, as a decimal string key, to that
// member's gene vector.
type GeneTableDoc map[string][]float64

// SaveGenes writes the current gene table to path. The document is
// marshalled in full before the file is touched, so a failed save never
// leaves a partial file behind.
func (p *Population) SaveGenes(path string) error {
	doc, err := p.geneTableDoc()
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (p *Population) geneTableDoc() (GeneTableDoc, error) {
	doc := make(GeneTableDoc, len(p.members))
	for i, member := range p.members {
		genes := member.Genes()
		for j, v := range genes {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: member %d gene %d", ErrNonFiniteGene, i, j)
			}
		}
		doc[strconv.Itoa(i)] = genes
	}
	return doc, nil
}

// LoadGenes overwrites every member's genes by index from a previously
// saved gene table. Validation runs over the whole document before any
// member is touched; loaded fitness is stale until the next evaluation.
func (p *Population) LoadGenes(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc GeneTableDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode gene table %s: %w", path, err)
	}
	return p.ApplyGeneTable(doc)
}

func (p *Population) ApplyGeneTable(doc GeneTableDoc) error {
	if len(doc) != len(p.members) {
		return fmt.Errorf("%w: document has %d entries, population has %d members", ErrPopulationSizeMismatch, len(doc), len(p.members))
	}

	vectors := make([][]float64, len(p.members))
	for i := range p.members {
		genes, ok := doc[strconv.Itoa(i)]
		if !ok {
			return fmt.Errorf("gene table is missing entry for member %d", i)
		}
		if len(genes) != p.cfg.GeneCount {
			return fmt.Errorf("member %d has %d genes in document, want %d", i, len(genes), p.cfg.GeneCount)
		}
		vectors[i] = genes
	}

	for i, member := range p.members {
		if err := member.WriteGenes(vectors[i]); err != nil {
			return fmt.Errorf("write genes for member %d: %w", i, err)
		}
	}
	p.best = nil
	return nil
}
