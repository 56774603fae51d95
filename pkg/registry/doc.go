// Package registry tracks named validator environments and which one is
// active, independent of any running controller. Mutations are
// serialized behind the registry's own lock; reads return deep copies.
package registry
