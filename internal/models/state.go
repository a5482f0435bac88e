package models

// State is the complete durable ledger state: every account (with inbox)
// and the transaction log, newest transaction first.
type State struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
}

// Clone returns a deep copy of the state
func (s *State) Clone() *State {
	if s == nil {
		return &State{}
	}
	c := &State{
		Accounts:     make([]Account, len(s.Accounts)),
		Transactions: make([]Transaction, len(s.Transactions)),
	}
	for i, a := range s.Accounts {
		c.Accounts[i] = a.Clone()
	}
	copy(c.Transactions, s.Transactions)
	return c
}
