// Package services contains the pagination core: the page cache, the
// window controller, the prefetch scheduler and the browse session
// aggregate that combines them.
package services
