package utils

import (
	"github.com/iov-one/descrow"
)

// ActionKey is the tag key holding the path of the delivered message.
const ActionKey = "action"

// ActionTagger tags each successful delivery with the path of its message,
// for example action=escrow/release, so clients can subscribe to a single
// kind of escrow operation.
type ActionTagger struct{}

var _ descrow.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx, next descrow.Checker) (*descrow.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx, next descrow.Deliverer) (*descrow.DeliverResult, error) {
	// A tx without a message is refused before anything runs.
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, descrow.Tag(ActionKey, []byte(msg.Path())))
	return res, nil
}
