/*
Package bank holds the balances of all accounts in the host currency and
moves value between them.

There is no logic in the balance, except that it may never go below zero or
above the amount range. Every escrow payment ends up as a MoveCoins call.
*/
package bank
