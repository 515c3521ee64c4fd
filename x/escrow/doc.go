/*
Package escrow implements a delivery escrow between a buyer, a transporter
and a seller.

The buyer deposits funds. Once the goods are marked as delivered, anyone may
release the funds: the transporter receives a fixed 10% share and the seller,
named by the caller of the release, receives the rest. Before delivery the
buyer may take the whole balance back.

The state machine in machine.go depends only on the Ledger interface. The
handlers in this package bind it to the bank extension, to signature based
authentication and to the block time. An escrow holds its funds in a custody
account derived from its id.

The handlers never undo a partial operation themselves. A failed transaction
must be discarded as a whole, which is done by the savepoint decorator and
the application.
*/
package escrow
