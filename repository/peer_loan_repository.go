package repository

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/codewithmirza/datanyx/domain"
)

//go:embed peer_loans.yaml
var defaultPeerLoans []byte

type PeerLoanRepository interface {
	All() []domain.PeerLoan
}

// PeerLoanRepositoryMemory serves a fixed peer loan dataset.
type PeerLoanRepositoryMemory struct {
	loans []domain.PeerLoan
}

type peerLoanFile struct {
	Loans []domain.PeerLoan `yaml:"loans"`
}

// NewPeerLoanRepositoryMemory wraps the given loans.
func NewPeerLoanRepositoryMemory(loans []domain.PeerLoan) *PeerLoanRepositoryMemory {
	return &PeerLoanRepositoryMemory{loans: loans}
}

// LoadPeerLoans parses a YAML peer loan document.
func LoadPeerLoans(data []byte) (*PeerLoanRepositoryMemory, error) {
	var f peerLoanFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing peer loans: %w", err)
	}
	for i, l := range f.Loans {
		if l.LoanAmount < 0 {
			return nil, fmt.Errorf("peer loan %d: negative loan_amount", i)
		}
		if l.DefaultStatus != 0 && l.DefaultStatus != 1 {
			return nil, fmt.Errorf("peer loan %d: default_status must be 0 or 1", i)
		}
	}
	return NewPeerLoanRepositoryMemory(f.Loans), nil
}

// DefaultPeerLoans returns the embedded dataset.
func DefaultPeerLoans() (*PeerLoanRepositoryMemory, error) {
	return LoadPeerLoans(defaultPeerLoans)
}

func (r *PeerLoanRepositoryMemory) All() []domain.PeerLoan {
	out := make([]domain.PeerLoan, len(r.loans))
	copy(out, r.loans)
	return out
}
