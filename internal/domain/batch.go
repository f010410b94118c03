package domain

// OpKind distinguishes batch operations.
type OpKind string

const (
	OpSet    OpKind = "set"
	OpDelete OpKind = "delete"
)

// BatchOp is a single staged write. Article is populated for OpSet only.
type BatchOp struct {
	Kind    OpKind
	ID      string
	Article ProcessedArticle
}

// WriteBatch accumulates set/delete operations for one run. It is plain
// in-memory state owned by a single run; the store applies it atomically.
type WriteBatch struct {
	ops []BatchOp
}

// Set stages an upsert-with-merge keyed by the article's canonical id.
func (b *WriteBatch) Set(article ProcessedArticle) {
	b.ops = append(b.ops, BatchOp{Kind: OpSet, ID: article.ID, Article: article})
}

// Delete stages removal of the document with the given id.
func (b *WriteBatch) Delete(id string) {
	b.ops = append(b.ops, BatchOp{Kind: OpDelete, ID: id})
}

// Ops returns the staged operations in staging order.
func (b *WriteBatch) Ops() []BatchOp {
	return b.ops
}

// Empty reports whether nothing has been staged.
func (b *WriteBatch) Empty() bool {
	return len(b.ops) == 0
}
