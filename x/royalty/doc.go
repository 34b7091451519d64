/*
Package royalty implements an extension that splits every received token
amount between a configured set of recipients.

A distribution table declares the recipients and their rates. Rates are fixed
point numbers with a precision declared by the table, and all rates of a
table must add up to exactly 100%. The table is validated whenever it is
written and never at payout time.

Tokens are sent by token contracts that must be registered first. Receiving
from an unknown token fails, so that funds are never forwarded for an
unrecognized sender. A successful receive produces one transfer instruction per
recipient, in the order of the table. Rounding leftovers are not
redistributed.

Registering tokens, changing the distribution and changing the admin are
restricted to the admin address stored in the configuration.
*/
package royalty
