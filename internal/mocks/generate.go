package mocks

//go:generate mockery --name RunStore --srcpkg github.com/aevon-lab/obrc/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
