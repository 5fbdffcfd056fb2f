//go:build darwin

package sharedtex

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// IOSurface is a CFTypeRef under the hood, released with CFRelease rather
// than an Objective-C message send. We dlopen CoreFoundation the same way
// the Metal HAL dlopens libobjc (ffi.LoadLibrary/GetSymbol/PrepareCallInterface/
// CallFunction, no cgo) and call the C function pointer directly.
var (
	cfInitOnce sync.Once
	cfInitErr  error

	cfLib        unsafe.Pointer
	symCFRelease unsafe.Pointer
	cifCFRelease types.CallInterface
)

func initCoreFoundation() error {
	cfInitOnce.Do(func() {
		lib, err := ffi.LoadLibrary("/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation")
		if err != nil {
			cfInitErr = fmt.Errorf("sharedtex: failed to load CoreFoundation: %w", err)
			return
		}
		cfLib = lib

		sym, err := ffi.GetSymbol(cfLib, "CFRelease")
		if err != nil {
			cfInitErr = fmt.Errorf("sharedtex: CFRelease not found: %w", err)
			return
		}
		symCFRelease = sym

		cfInitErr = ffi.PrepareCallInterface(&cifCFRelease, types.DefaultCall,
			types.VoidTypeDescriptor,
			[]*types.TypeDescriptor{types.PointerTypeDescriptor})
	})
	return cfInitErr
}

// releaseIOSurface calls CFRelease on the IOSurfaceRef, following the
// retain/release discipline CoreFoundation requires for a CFTypeRef.
func releaseIOSurface(ref uintptr) error {
	if ref == 0 {
		return nil
	}
	if err := initCoreFoundation(); err != nil {
		return err
	}
	ptr := ref
	args := [1]unsafe.Pointer{unsafe.Pointer(&ptr)}
	return ffi.CallFunction(&cifCFRelease, symCFRelease, nil, args[:])
}

func releaseNTHandle(uintptr) error {
	return nil
}

func releaseDMABUFFd(int32) error {
	return nil
}
