package configure

import (
	"fmt"
	"sort"
)

type Kind uint8

const (
	Capability Kind = iota // An optional backend or library
	Backend                // One member of a mutually exclusive backend group
	Convention             // A 0/1 policy decision for a binding layer
)

func (k Kind) String() string {
	switch k {
	case Capability:
		return "capability"
	case Backend:
		return "backend"
	case Convention:
		return "convention"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Flag describes one recognized capability flag. Name is the identifier the
// generated artifact exposes, Placeholder is the template token that
// supplies its value.
type Flag struct {
	Name        string
	Placeholder string
	Accessor    string
	Kind        Kind
	Group       string // Exclusive group, only for Backend flags
	Requires    string // Placeholder this flag is meaningless without
	Doc         string
	Domain      []int
}

func (f Flag) Allows(v int) bool {
	for _, d := range f.Domain {
		if d == v {
			return true
		}
	}
	return false
}

// boolDomain returns a fresh {0, 1} domain, one per flag.
func boolDomain() []int { return []int{0, 1} }

// Registry lists the recognized flags in the order the default template
// declares them.
var Registry = []Flag{
	{Name: "AT_MKLDNN_ENABLED", Placeholder: "AT_MKLDNN_ENABLED", Accessor: "MKLDNNEnabled",
		Kind: Capability, Doc: "the oneDNN deep learning primitives backend"},
	{Name: "AT_MKLDNN_ACL_ENABLED", Placeholder: "AT_MKLDNN_ACL_ENABLED", Accessor: "MKLDNNACLEnabled",
		Kind: Capability, Requires: "AT_MKLDNN_ENABLED", Doc: "the Arm Compute Library acceleration of oneDNN"},
	{Name: "AT_MKL_ENABLED", Placeholder: "AT_MKL_ENABLED", Accessor: "MKLEnabled",
		Kind: Capability, Doc: "the MKL optimized linear algebra backend"},
	{Name: "AT_MKL_SEQUENTIAL", Placeholder: "AT_MKL_SEQUENTIAL", Accessor: "MKLSequential",
		Kind: Convention, Requires: "AT_MKL_ENABLED", Doc: "the sequential (single threaded) MKL variant"},
	{Name: "AT_POCKETFFT_ENABLED", Placeholder: "AT_POCKETFFT_ENABLED", Accessor: "PocketFFTEnabled",
		Kind: Capability, Doc: "the PocketFFT real-to-complex transform library"},
	{Name: "AT_NNPACK_ENABLED", Placeholder: "AT_NNPACK_ENABLED", Accessor: "NNPACKEnabled",
		Kind: Capability, Doc: "the NNPACK neural network acceleration library"},
	{Name: "CAFFE2_STATIC_LINK_CUDA", Placeholder: "CAFFE2_STATIC_LINK_CUDA_INT", Accessor: "StaticLinkCUDA",
		Kind: Capability, Doc: "static linking of the CUDA numerics toolkit"},
	{Name: "AT_BUILD_WITH_BLAS", Placeholder: "USE_BLAS", Accessor: "BuildWithBLAS",
		Kind: Capability, Doc: "an external BLAS library"},
	{Name: "AT_BUILD_WITH_LAPACK", Placeholder: "USE_LAPACK", Accessor: "BuildWithLAPACK",
		Kind: Capability, Doc: "an external LAPACK library"},
	{Name: "AT_PARALLEL_OPENMP", Placeholder: "AT_PARALLEL_OPENMP", Accessor: "ParallelOpenMP",
		Kind: Backend, Group: "parallel", Doc: "the thread pool parallel backend"},
	{Name: "AT_PARALLEL_NATIVE", Placeholder: "AT_PARALLEL_NATIVE", Accessor: "ParallelNative",
		Kind: Backend, Group: "parallel", Doc: "the native threading parallel backend"},
	{Name: "AT_BLAS_F2C", Placeholder: "AT_BLAS_F2C", Accessor: "BLASF2C",
		Kind: Convention, Requires: "USE_BLAS", Doc: "the f2c calling convention (real BLAS functions return double)"},
	{Name: "AT_BLAS_USE_CBLAS_DOT", Placeholder: "AT_BLAS_USE_CBLAS_DOT", Accessor: "BLASUseCBLASDot",
		Kind: Convention, Requires: "USE_BLAS", Doc: "the CBLAS dot product entry points"},
	{Name: "AT_KLEIDIAI_ENABLED", Placeholder: "AT_KLEIDIAI_ENABLED", Accessor: "KleidiAIEnabled",
		Kind: Capability, Doc: "the KleidiAI Arm matrix multiplication kernels"},
}

func init() {
	for i := range Registry {
		Registry[i].Domain = boolDomain()
	}
}

// ByPlaceholder finds the flag fed by the given template token.
func ByPlaceholder(token string) (f Flag, ok bool) {
	for _, f = range Registry {
		if f.Placeholder == token {
			return f, true
		}
	}
	return Flag{}, false
}

// ByName finds a flag by its exposed name.
func ByName(name string) (f Flag, ok bool) {
	for _, f = range Registry {
		if f.Name == name {
			return f, true
		}
	}
	return Flag{}, false
}

// Groups returns the placeholders of each exclusive backend group.
func Groups() (groups map[string][]string) {
	groups = make(map[string][]string)
	for _, f := range Registry {
		if f.Kind == Backend {
			groups[f.Group] = append(groups[f.Group], f.Placeholder)
		}
	}
	for _, members := range groups {
		sort.Strings(members)
	}
	return
}
