package webgpu

import (
	"encoding/binary"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/laminar-la/laminar/internal/linalg"
	"github.com/laminar-la/laminar/internal/matrix"
)

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached in the Backend's shaders map.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)

	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	// Create compute pipeline with auto layout (nil layout)
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a GPU buffer and uploads initial data. WebGPU
// forbids zero-sized bindings, so empty uploads are padded to one
// element. Returns the buffer together with its allocated size.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, uint64) {
	if len(data) == 0 {
		data = make([]byte, 4)
	}
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer, size
}

// createUniformBuffer creates a uniform buffer with proper alignment.
// Uniform buffers require 16-byte alignment for struct fields.
func (b *Backend) createUniformBuffer(data []byte) (*wgpu.Buffer, uint64) {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15 // Round up to 16-byte boundary

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer, alignedSize
}

// readBuffer reads data back from a GPU buffer to CPU memory.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingBuffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size)
	if err != nil {
		return nil, err
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)

	stagingBuffer.Unmap()

	return result, nil
}

// int32Bytes reinterprets an index array as raw bytes for upload. WGSL
// reads the buffer as u32; indices are never negative, so the bit
// patterns agree.
func int32Bytes(s []int32) []byte {
	if len(s) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
}

func boolParam(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

// runCSRSolve executes a sparse triangular solve shader over the stored
// matrix and reads the solution back into v.
func (b *Backend) runCSRSolve(shaderName, shaderCode string, a *matrix.CSR, v *matrix.Vector, tag linalg.ShapeTag) error {
	shader := b.compileShader(shaderName, shaderCode)
	pipeline := b.getOrCreatePipeline(shaderName, shader)

	bufRowPtr, sizeRowPtr := b.createBuffer(int32Bytes(a.RowPtr()), wgpu.BufferUsageStorage)
	defer bufRowPtr.Release()
	bufColIdx, sizeColIdx := b.createBuffer(int32Bytes(a.ColIdx()), wgpu.BufferUsageStorage)
	defer bufColIdx.Release()
	bufVals, sizeVals := b.createBuffer(a.Data(), wgpu.BufferUsageStorage)
	defer bufVals.Release()
	bufX, sizeX := b.createBuffer(v.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufX.Release()

	params := make([]byte, 16)
	//nolint:gosec // G115: row count is non-negative
	binary.LittleEndian.PutUint32(params[0:4], uint32(a.Rows()))
	binary.LittleEndian.PutUint32(params[4:8], boolParam(tag.IsUpper()))
	binary.LittleEndian.PutUint32(params[8:12], boolParam(tag.IsUnit()))
	bufParams, sizeParams := b.createUniformBuffer(params)
	defer bufParams.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufRowPtr, 0, sizeRowPtr),
		wgpu.BufferBindingEntry(1, bufColIdx, 0, sizeColIdx),
		wgpu.BufferBindingEntry(2, bufVals, 0, sizeVals),
		wgpu.BufferBindingEntry(3, bufX, 0, sizeX),
		wgpu.BufferBindingEntry(4, bufParams, 0, sizeParams),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	// The row sweep is a single sequential pass; one workgroup owns it.
	computePass.DispatchWorkgroups(1, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	out, err := b.readBuffer(bufX, sizeX)
	if err != nil {
		return err
	}
	copy(v.Data(), out)
	return nil
}

// runDenseSolve executes the dense triangular solve shader. rhsData is
// the full backing buffer of the right-hand side; cols, brs and bcs
// describe its layout, so strided views solve in place.
func (b *Backend) runDenseSolve(a *matrix.Dense, rhsData []byte, cols, brs, bcs int, tag linalg.ShapeTag) error {
	shader := b.compileShader("dense_solve", denseSolveShader)
	pipeline := b.getOrCreatePipeline("dense_solve", shader)

	bufA, sizeA := b.createBuffer(a.Data(), wgpu.BufferUsageStorage)
	defer bufA.Release()
	bufB, sizeB := b.createBuffer(rhsData, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufB.Release()

	params := make([]byte, 32)
	//nolint:gosec // G115: extents and strides are non-negative
	for i, v := range []int{a.Rows(), cols, a.RowStride(), a.ColStride(), brs, bcs} {
		binary.LittleEndian.PutUint32(params[i*4:i*4+4], uint32(v))
	}
	binary.LittleEndian.PutUint32(params[24:28], boolParam(tag.IsUpper()))
	binary.LittleEndian.PutUint32(params[28:32], boolParam(tag.IsUnit()))
	bufParams, sizeParams := b.createUniformBuffer(params)
	defer bufParams.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufA, 0, sizeA),
		wgpu.BufferBindingEntry(1, bufB, 0, sizeB),
		wgpu.BufferBindingEntry(2, bufParams, 0, sizeParams),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	// One invocation per right-hand-side column.
	//nolint:gosec // G115: workgroup count is non-negative
	workgroups := uint32((cols + workgroupSize - 1) / workgroupSize)
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	out, err := b.readBuffer(bufB, sizeB)
	if err != nil {
		return err
	}
	copy(rhsData, out)
	return nil
}

// runLUFactorize executes the in-place LU elimination shader and reads
// the packed factors back into a.
func (b *Backend) runLUFactorize(a *matrix.Dense) error {
	shader := b.compileShader("lu_factorize", luFactorizeShader)
	pipeline := b.getOrCreatePipeline("lu_factorize", shader)

	bufA, sizeA := b.createBuffer(a.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufA.Release()

	params := make([]byte, 16)
	//nolint:gosec // G115: extents and strides are non-negative
	for i, v := range []int{a.Rows(), a.RowStride(), a.ColStride()} {
		binary.LittleEndian.PutUint32(params[i*4:i*4+4], uint32(v))
	}
	bufParams, sizeParams := b.createUniformBuffer(params)
	defer bufParams.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufA, 0, sizeA),
		wgpu.BufferBindingEntry(1, bufParams, 0, sizeParams),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	// Elimination steps are barrier-ordered within a single workgroup.
	computePass.DispatchWorkgroups(1, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	out, err := b.readBuffer(bufA, sizeA)
	if err != nil {
		return err
	}
	copy(a.Data(), out)
	return nil
}

// runRowStats executes the per-row statistics shader.
func (b *Backend) runRowStats(a *matrix.CSR, mode linalg.RowStat, result *matrix.Vector) error {
	shader := b.compileShader("row_stats", rowStatsShader)
	pipeline := b.getOrCreatePipeline("row_stats", shader)

	bufRowPtr, sizeRowPtr := b.createBuffer(int32Bytes(a.RowPtr()), wgpu.BufferUsageStorage)
	defer bufRowPtr.Release()
	bufColIdx, sizeColIdx := b.createBuffer(int32Bytes(a.ColIdx()), wgpu.BufferUsageStorage)
	defer bufColIdx.Release()
	bufVals, sizeVals := b.createBuffer(a.Data(), wgpu.BufferUsageStorage)
	defer bufVals.Release()
	bufResult, sizeResult := b.createBuffer(result.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufResult.Release()

	params := make([]byte, 16)
	//nolint:gosec // G115: row count and mode are non-negative
	binary.LittleEndian.PutUint32(params[0:4], uint32(a.Rows()))
	//nolint:gosec // G115: row count and mode are non-negative
	binary.LittleEndian.PutUint32(params[4:8], uint32(mode))
	bufParams, sizeParams := b.createUniformBuffer(params)
	defer bufParams.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufRowPtr, 0, sizeRowPtr),
		wgpu.BufferBindingEntry(1, bufColIdx, 0, sizeColIdx),
		wgpu.BufferBindingEntry(2, bufVals, 0, sizeVals),
		wgpu.BufferBindingEntry(3, bufResult, 0, sizeResult),
		wgpu.BufferBindingEntry(4, bufParams, 0, sizeParams),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	//nolint:gosec // G115: workgroup count is non-negative
	workgroups := uint32((a.Rows() + workgroupSize - 1) / workgroupSize)
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	out, err := b.readBuffer(bufResult, sizeResult)
	if err != nil {
		return err
	}
	copy(result.Data(), out)
	return nil
}

// runCSRMatVec executes the sparse mat-vec shader.
func (b *Backend) runCSRMatVec(a *matrix.CSR, x, result *matrix.Vector) error {
	shader := b.compileShader("csr_matvec", csrMatVecShader)
	pipeline := b.getOrCreatePipeline("csr_matvec", shader)

	bufRowPtr, sizeRowPtr := b.createBuffer(int32Bytes(a.RowPtr()), wgpu.BufferUsageStorage)
	defer bufRowPtr.Release()
	bufColIdx, sizeColIdx := b.createBuffer(int32Bytes(a.ColIdx()), wgpu.BufferUsageStorage)
	defer bufColIdx.Release()
	bufVals, sizeVals := b.createBuffer(a.Data(), wgpu.BufferUsageStorage)
	defer bufVals.Release()
	bufX, sizeX := b.createBuffer(x.Data(), wgpu.BufferUsageStorage)
	defer bufX.Release()
	bufResult, sizeResult := b.createBuffer(result.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufResult.Release()

	params := make([]byte, 16)
	//nolint:gosec // G115: row count is non-negative
	binary.LittleEndian.PutUint32(params[0:4], uint32(a.Rows()))
	bufParams, sizeParams := b.createUniformBuffer(params)
	defer bufParams.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufRowPtr, 0, sizeRowPtr),
		wgpu.BufferBindingEntry(1, bufColIdx, 0, sizeColIdx),
		wgpu.BufferBindingEntry(2, bufVals, 0, sizeVals),
		wgpu.BufferBindingEntry(3, bufX, 0, sizeX),
		wgpu.BufferBindingEntry(4, bufResult, 0, sizeResult),
		wgpu.BufferBindingEntry(5, bufParams, 0, sizeParams),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	//nolint:gosec // G115: workgroup count is non-negative
	workgroups := uint32((a.Rows() + workgroupSize - 1) / workgroupSize)
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	out, err := b.readBuffer(bufResult, sizeResult)
	if err != nil {
		return err
	}
	copy(result.Data(), out)
	return nil
}
