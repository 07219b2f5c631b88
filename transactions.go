package banker

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// transactionFileRE matches the monthly transaction files (2021-07.yaml).
var transactionFileRE = regexp.MustCompile(`^\d{4}-\d{2}\.ya?ml$`)

// Split assigns a part of a transaction amount to a category.
type Split struct {
	Amount   Money  `json:"amount"`
	Category string `json:"category"`
}

// ReceiptRef is a receipt file referenced by a transaction.
type ReceiptRef struct {
	FileName string `yaml:"file_name" json:"file_name"`
}

// Transaction is a recorded money movement.
type Transaction struct {
	ID          string       `json:"id"`
	File        string       `json:"file"` // file the transaction was read from
	Date        Date         `json:"date"`
	Payee       string       `json:"payee"`
	Amount      Money        `json:"amount"`
	EnteredNano *int64       `json:"entered_nano,omitempty"`
	Splits      []Split      `json:"splits"`
	Receipts    []ReceiptRef `json:"receipts,omitempty"`
}

type rawSplit struct {
	Amount   yamlDecimal `yaml:"amount"`
	Category string      `yaml:"category"`
}

type rawTransaction struct {
	Date        Date         `yaml:"date"`
	Payee       string       `yaml:"payee"`
	Amount      yamlDecimal  `yaml:"amount"`
	Currency    string       `yaml:"currency"`
	EnteredNano *int64       `yaml:"entered_nano"`
	Splits      []rawSplit   `yaml:"splits"`
	Receipts    []ReceiptRef `yaml:"receipts"`
}

// Transactions is the set of transactions of the data directory, by id.
type Transactions struct {
	byID map[string]*Transaction
}

// NewTransactions returns an empty set.
func NewTransactions() *Transactions { return &Transactions{byID: make(map[string]*Transaction)} }

// Len returns the number of transactions.
func (t *Transactions) Len() int { return len(t.byID) }

// Get returns the transaction with the given id.
func (t *Transactions) Get(id string) (*Transaction, bool) {
	tx, ok := t.byID[id]
	return tx, ok
}

// All returns the transactions sorted by date then id.
func (t *Transactions) All() []*Transaction {
	all := slices.Collect(maps.Values(t.byID))
	slices.SortFunc(all, func(a, b *Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return all
}

// Add adds a transaction, ids must be unique.
func (t *Transactions) Add(tx *Transaction) error {
	if prev, exists := t.byID[tx.ID]; exists {
		return fmt.Errorf("duplicate transaction id %s in %s and %s", tx.ID, prev.File, tx.File)
	}
	t.byID[tx.ID] = tx
	return nil
}

// Decode decodes one transaction file into t.
func (t *Transactions) Decode(r io.Reader, file, defaultCurrency string) error {
	var raw map[string]rawTransaction
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	for _, id := range slices.Sorted(maps.Keys(raw)) {
		rt := raw[id]
		currency := rt.Currency
		if currency == "" {
			currency = defaultCurrency
		}
		tx := &Transaction{
			ID:          id,
			File:        file,
			Date:        rt.Date,
			Payee:       rt.Payee,
			Amount:      M(rt.Amount.Decimal, currency),
			EnteredNano: rt.EnteredNano,
			Receipts:    rt.Receipts,
		}
		for _, s := range rt.Splits {
			tx.Splits = append(tx.Splits, Split{Amount: M(s.Amount.Decimal, currency), Category: s.Category})
		}
		if err := t.Add(tx); err != nil {
			return err
		}
	}
	return nil
}

// LoadTransactions reads every monthly transaction file of dir.
func LoadTransactions(dir, defaultCurrency string) (*Transactions, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ConfigError{Path: dir, Msg: "cannot read transactions directory", Err: err}
	}
	t := NewTransactions()
	for _, e := range entries {
		if e.IsDir() || !transactionFileRE.MatchString(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := t.decodeFile(path, defaultCurrency); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Transactions) decodeFile(path, defaultCurrency string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := t.Decode(f, path, defaultCurrency); err != nil {
		return &ConfigError{Path: path, Msg: "invalid transaction file", Err: err}
	}
	return nil
}

// TransactionID computes the id of a transaction entered at enteredNano.
func TransactionID(enteredNano int64) string {
	sum := sha256.Sum256([]byte(strconv.FormatInt(enteredNano, 10)))
	return hex.EncodeToString(sum[:])
}

// SplitTotal returns the sum of the splits.
func (tx *Transaction) SplitTotal() Money {
	total := M(decimal.Zero, tx.Amount.Currency())
	for _, s := range tx.Splits {
		total = total.Add(s.Amount)
	}
	return total
}

// Verify checks the id and that the splits add up to the amount.
func (tx *Transaction) Verify() error {
	var errs []error
	switch {
	case tx.EnteredNano == nil:
		errs = append(errs, fmt.Errorf("transaction %s: entered time is missing", tx.ID))
	case TransactionID(*tx.EnteredNano) != tx.ID:
		errs = append(errs, fmt.Errorf("transaction %s: bad id, want %s", tx.ID, TransactionID(*tx.EnteredNano)))
	}
	if total := tx.SplitTotal(); !total.Amount().Equal(tx.Amount.Amount()) {
		errs = append(errs, fmt.Errorf("transaction %s: split total %s not equal to transaction amount %s", tx.ID, total, tx.Amount))
	}
	return errors.Join(errs...)
}

// Verify checks every transaction and returns all the failures.
func (t *Transactions) Verify() error {
	var errs []error
	for _, tx := range t.All() {
		if err := tx.Verify(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LinkReceipts marks each receipt referenced by a transaction with that transaction id.
func (t *Transactions) LinkReceipts(receipts *Receipts) error {
	var errs []error
	for _, tx := range t.All() {
		for _, ref := range tx.Receipts {
			r, ok := receipts.Get(ref.FileName)
			if !ok {
				errs = append(errs, fmt.Errorf("transaction %s: unknown receipt file: %s", tx.ID, ref.FileName))
				continue
			}
			r.LinkedTransaction = tx.ID
		}
	}
	return errors.Join(errs...)
}
