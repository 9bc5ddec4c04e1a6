// Package msgs provides the L1 wire envelope and generic replies.
package msgs

// Messages travel between an L1 controller (e.g. vescd) and L2 clients
// (e.g. vesccli) wrapped in Typed. Type ids are laid out as
//
//   bit 31     kind (0 command, 1 event)
//   bit 30-16  group
//   bit 15     reply flag
//   bit 14-0   id within group
