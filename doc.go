/*
Package descrow holds the types shared by the delivery escrow application:
addresses and conditions, the store and handler interfaces, transactions and
the block context.

Handlers get block data from the context. Every value has a setter and a
getter:

  WithHeight(Context, int64) Context
  GetHeight(Context) (int64, bool)

A setter panics if the value was already set, so a decorator cannot change
the height or the block time seen by the handlers below it.
*/
package descrow
