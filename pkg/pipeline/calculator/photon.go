package calculator

import (
	"github.com/askiada/go-simex/pkg/pipeline/model"
)

const (
	PhotonSourceName     = "Source"
	PhotonPropagatorName = "Propagator"

	photonSourceCommand     = "genesis"
	photonPropagatorCommand = "wpg-propagate"
)

// wavefrontData is the FEL wavefront layout written by photon sources and read by propagators.
var wavefrontData = model.Paths(
	"/data/arrEhor",
	"/data/arrEver",
	"/params/Mesh/nSlices",
	"/params/Mesh/nx",
	"/params/Mesh/ny",
	"/params/Mesh/sliceMax",
	"/params/Mesh/sliceMin",
	"/params/Mesh/xMax",
	"/params/Mesh/xMin",
	"/params/Mesh/yMax",
	"/params/Mesh/yMin",
	"/params/Mesh/zCoord",
	"/params/Rx",
	"/params/Ry",
	"/params/dRx",
	"/params/dRy",
	"/params/nval",
	"/params/photonEnergy",
	"/params/wDomain",
	"/params/wEFieldUnit",
	"/params/wFloatType",
	"/params/wSpace",
	"/params/xCentre",
	"/params/yCentre",
	"/history/parent/info/data_description",
	"/history/parent/info/package_version",
	"/history/parent/misc/FAST2XY.DAT",
	"/history/parent/misc/angular_distribution",
	"/history/parent/misc/spot_size",
	"/history/parent/misc/gain_curve",
	"/history/parent/misc/nzc",
	"/history/parent/misc/temporal_struct",
	"/version",
)

// PhotonSourceContract describes a FEL photon source reading an openPMD electron beam snapshot.
var PhotonSourceContract = model.MustDataContract(
	model.Paths(
		"/data/particles/electrons/position/x",
		"/data/particles/electrons/position/y",
		"/data/particles/electrons/position/z",
		"/data/particles/electrons/momentum/x",
		"/data/particles/electrons/momentum/y",
		"/data/particles/electrons/momentum/z",
		"/data/particles/electrons/charge",
	),
	wavefrontData,
)

// PhotonPropagatorContract describes a wavefront propagation through a beamline.
var PhotonPropagatorContract = model.MustDataContract(
	wavefrontData,
	model.Paths(
		"/data/arrEhor",
		"/data/arrEver",
		"/params/Mesh/nSlices",
		"/params/Mesh/nx",
		"/params/Mesh/ny",
		"/params/Mesh/qxMax",
		"/params/Mesh/qxMin",
		"/params/Mesh/qyMax",
		"/params/Mesh/qyMin",
		"/params/Mesh/sliceMax",
		"/params/Mesh/sliceMin",
		"/params/Mesh/xMax",
		"/params/xMin",
		"/params/yMax",
		"/params/yMin",
		"/params/zCoord",
		"/params/beamline/printout",
		"/params/Rx",
		"/params/Ry",
		"/params/dRx",
		"/params/dRy",
		"/params/nval",
		"/params/photonEnergy",
		"/params/wDomain",
		"/params/wEFieldUnit",
		"/params/wFloatType",
		"/params/wSpace",
		"/params/xCentre",
		"/params/yCentre",
		"/info/package_version",
		"/info/contact",
		"/info/data_description",
		"/info/method_description",
		"/misc/xFWHM",
		"/misc/yFWHM",
		"/version",
	),
)

// PhotonSource computes a FEL pulse from an electron beam with the Genesis code.
type PhotonSource struct {
	*Base
}

// NewPhotonSource creates a photon source. Input defaults to "FELsource_in.h5", output to "source".
func NewPhotonSource(params Parameters, inputPath, outputPath string) (Calculator, error) {
	base, err := NewBase(PhotonSourceName, PhotonSourceContract, params, inputPath, outputPath,
		Defaults{InputPath: "FELsource_in.h5", OutputPath: "source"},
		&CommandBackend{Command: photonSourceCommand},
	)
	if err != nil {
		return nil, err
	}

	return &PhotonSource{Base: base}, nil
}

// PhotonPropagator propagates a FEL wavefront through the beamline optics.
type PhotonPropagator struct {
	*Base
}

// NewPhotonPropagator creates a propagator. Input defaults to "source", output to "prop".
func NewPhotonPropagator(params Parameters, inputPath, outputPath string) (Calculator, error) {
	base, err := NewBase(PhotonPropagatorName, PhotonPropagatorContract, params, inputPath, outputPath,
		Defaults{InputPath: "source", OutputPath: "prop"},
		&CommandBackend{Command: photonPropagatorCommand},
	)
	if err != nil {
		return nil, err
	}

	return &PhotonPropagator{Base: base}, nil
}

var (
	_ Factory = NewPhotonSource
	_ Factory = NewPhotonPropagator
)
