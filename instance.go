package vktriangle

import (
	"fmt"
	"io"
	"runtime"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Instance wraps the Vulkan instance and the layers enabled on it.
type Instance struct {
	handle vk.Instance
	layers []string
	debug  *DebugCallback
}

// CreateInstance creates the Vulkan instance with the window system's required
// extensions. With validation enabled the requested layers that the loader
// offers are enabled together with the debug report extension.
func CreateInstance(cfg Config, windowExtensions []string) (*Instance, error) {
	log := cfg.logger()

	available, err := InstanceExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate instance extensions")
	}
	var wanted []string
	if cfg.Validation {
		wanted = append(wanted, debugReportExtension)
	}
	exts := NewExtensionSet(windowExtensions, wanted, available)
	if missing := exts.MissingRequired(); len(missing) > 0 {
		return nil, errors.Errorf("missing required instance extensions %v", missing)
	}

	var layers []string
	if cfg.Validation {
		names, err := ValidationLayers()
		if err != nil {
			return nil, errors.Wrap(err, "enumerate layers")
		}
		set := NewExtensionSet(nil, cfg.RequestedLayers, names)
		if missing := set.MissingWanted(); len(missing) > 0 {
			log.Warn("validation layers unavailable", "layers", missing)
		}
		layers = set.Enabled()
	}

	var flags vk.InstanceCreateFlags
	if runtime.GOOS == "darwin" {
		flags = vk.InstanceCreateFlags(0x00000001) // VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR
	}

	enabled := exts.Enabled()
	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
			ApplicationVersion: uint32(vk.MakeVersion(0, 1, 0)),
			PApplicationName:   safeString(cfg.AppName),
			PEngineName:        safeString(cfg.AppName),
		},
		EnabledExtensionCount:   uint32(len(enabled)),
		PpEnabledExtensionNames: safeStrings(enabled),
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     safeStrings(layers),
		Flags:                   flags,
	}, nil, &instance)
	if isError(ret) {
		return nil, errors.Wrap(NewError(ret), "create instance")
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, errors.Wrap(err, "load instance functions")
	}
	log.Info("instance created", "extensions", len(enabled), "layers", layers)

	inst := &Instance{handle: instance, layers: layers}
	if cfg.Validation && contains(enabled, debugReportExtension) {
		inst.debug, err = RegisterDebugCallback(instance)
		if err != nil {
			inst.Destroy()
			return nil, err
		}
	}
	return inst, nil
}

func (i *Instance) Handle() vk.Instance {
	return i.handle
}

// Layers returns the layers enabled on the instance.
func (i *Instance) Layers() []string {
	return i.layers
}

func (i *Instance) Destroy() {
	i.debug.Destroy()
	if i.handle != nil {
		vk.DestroyInstance(i.handle, nil)
		i.handle = nil
	}
}

// PrintLayers writes the layer listing shown at startup.
func PrintLayers(w io.Writer, layers []LayerInfo) {
	fmt.Fprintln(w, "=== Layers ===")
	for _, l := range layers {
		fmt.Fprintf(w, "%s (version: %d)\n", l.Name, l.ImplementationVersion)
		fmt.Fprintf(w, "Description: %s\n", l.Description)
	}
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}
