package matrix

// Device tags a container with the memory space its buffer lives in.
// Every operation dispatches on this tag.
type Device int

// Supported memory spaces. Only Host and WebGPU have backends in this
// repository; the remaining tags exist so dispatch rejects them cleanly.
const (
	Host Device = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case Host:
		return "Host"
	case CUDA:
		return "CUDA"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}
