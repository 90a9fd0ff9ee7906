/*
Package langcopy copies attribute values of a record from one language to
others.

# Overview

Plain attributes are copied by their value parts. Reference and file
attributes are copied as id lists. Table attributes are copied row by row:
the rows of the target language are deleted, then every row of the source
language is added again with its cells.

# Cache

A copy to several languages reads the same source tables again and again.
A Cache memoizes table handles and the source rows per (record, field,
language) and remembers which target tables were already emptied, so a
target table is cleared at most once per operation:

	c := langcopy.New(langcopy.WithDispatcher(d))
	for _, lang := range targets {
	    if _, err := c.Copy(ctx, obj, fieldIDs, from, lang); err != nil {
	        return err
	    }
	}

A Copier and its Cache belong to one operation. Create a new one for the
next operation; nothing is shared between them.
*/
package langcopy
