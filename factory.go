// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package govvm

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/vm/vms"

	"github.com/luxfi/govvm/config"
)

var (
	// VMID is the unique identifier of the governance VM.
	VMID = ids.ID{'g', 'o', 'v', 'v', 'm'}

	// Name is the VM's alias in chain configuration.
	Name = "govvm"

	_ vms.Factory = (*Factory)(nil)
)

// Factory creates governance VM instances for the chains manager.
type Factory struct {
	config.Config
}

// New implements the vms.Factory interface. The returned ChainVM carries
// the factory's configuration; a chain config provided at Initialize
// overrides it.
func (f *Factory) New(logger log.Logger) (interface{}, error) {
	chainVM := NewChainVM(logger)
	chainVM.inner.Config = f.Config
	return chainVM, nil
}
