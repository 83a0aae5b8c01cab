package dashboard

import "github.com/shirou/gopsutil/v3/cpu"

// Sampler reports host CPU utilisation in percent.
type Sampler interface {
	CPUPercent() (float64, error)
}

type cpuSampler struct{}

func (cpuSampler) CPUPercent() (float64, error) {
	usage, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(usage) == 0 {
		return 0, nil
	}
	return usage[0], nil
}

// HostSampler reads the real machine through gopsutil.
var HostSampler Sampler = cpuSampler{}

// HostLoad returns the sampled CPU percentage, or 0 when it cannot be read.
func HostLoad(s Sampler) float64 {
	if s == nil {
		s = HostSampler
	}
	v, err := s.CPUPercent()
	if err != nil {
		return 0
	}
	return clampPct(v)
}
