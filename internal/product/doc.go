// Package product determines the installed version of each product at a site.
//
// A Product pairs a catalog entry with a Resolver. Resolvers come in a closed
// set of variants selected by the catalog's kind field:
//
//	binary        BinaryResolver         run the product binary
//	binary_dated  DatedBinaryResolver    same, with build-stamp rewriting
//	git           BranchResolver         checked-out branch
//	git_file      BranchFileResolver     version file paired with the branch
//	git_parsed    BranchCommandResolver  extracted output paired with the branch
//
// Resolve never fails. Every problem is folded into the returned string,
// usually NotFound with an optional parenthesised reason, and the operator is
// told about it through the diagnostic channel.
package product
