// ABOUTME: Internal sentinel used to abort a mutation without writing.
package repository

import "errors"

// errNoMatch aborts a Mutate when there is nothing to write.
var errNoMatch = errors.New("no matching reading")
