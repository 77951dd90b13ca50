package mocks

//go:generate mockery --name EpochRepository --srcpkg github.com/dadbot-lab/dadbot/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name CounterRepository --srcpkg github.com/dadbot-lab/dadbot/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
