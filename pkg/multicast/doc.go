// Package multicast provides a generic, thread-safe multicast delegate:
// an ordered registry of callback targets that are invoked as a group.
// Registration is non-owning: the registry holds weak references, so
// membership never keeps a target alive, and handles whose referent has
// been collected are pruned lazily on the next Invoke or Remove pass.
package multicast
