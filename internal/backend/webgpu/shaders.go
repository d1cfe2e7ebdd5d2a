package webgpu

// WGSL compute shaders for the solver kernels.
// Using string constants instead of embed for simplicity.

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

// csrSolveShader solves a sparse triangular system in place. The row
// recurrence is inherently sequential and a single invocation owns the
// whole sweep, accumulating each row's entries in storage order exactly
// like the host kernel. params.upper selects the triangle and sweep
// direction, params.unit skips the diagonal division.
const csrSolveShader = `
@group(0) @binding(0) var<storage, read> row_ptr: array<u32>;
@group(0) @binding(1) var<storage, read> col_idx: array<u32>;
@group(0) @binding(2) var<storage, read> vals: array<f32>;
@group(0) @binding(3) var<storage, read_write> x: array<f32>;

struct Params {
    n: u32,
    upper: u32,
    unit: u32,
}
@group(0) @binding(4) var<uniform> params: Params;

@compute @workgroup_size(1)
fn main() {
    for (var step: u32 = 0u; step < params.n; step = step + 1u) {
        var row = step;
        if (params.upper == 1u) {
            row = params.n - step - 1u;
        }
        var entry = x[row];
        var diag: f32 = 0.0;
        for (var i = row_ptr[row]; i < row_ptr[row + 1u]; i = i + 1u) {
            let col = col_idx[i];
            if (col == row) {
                diag = vals[i];
            } else if ((params.upper == 0u && col < row) || (params.upper == 1u && col > row)) {
                entry = entry - x[col] * vals[i];
            }
        }
        if (params.unit == 0u) {
            entry = entry / diag;
        }
        x[row] = entry;
    }
}
`

// csrTransSolveShader solves transpose(a)*x = b in place. Stored rows are
// walked as columns of the transposed system: thread 0 finalizes x[col],
// then the scatter updates fan out across the workgroup. Distinct row
// indices within a CSR row are distinct targets, so the fan-out is
// race-free; storageBarrier() orders the column steps.
const csrTransSolveShader = `
@group(0) @binding(0) var<storage, read> row_ptr: array<u32>;
@group(0) @binding(1) var<storage, read> col_idx: array<u32>;
@group(0) @binding(2) var<storage, read> vals: array<f32>;
@group(0) @binding(3) var<storage, read_write> x: array<f32>;

struct Params {
    n: u32,
    upper: u32,
    unit: u32,
}
@group(0) @binding(4) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(local_invocation_id) local_id: vec3<u32>) {
    let tid = local_id.x;
    // A stored lower triangle transposes to an upper system, so its
    // columns are walked backward; a stored upper walks forward.
    for (var step: u32 = 0u; step < params.n; step = step + 1u) {
        var col = step;
        if (params.upper == 0u) {
            col = params.n - step - 1u;
        }
        let begin = row_ptr[col];
        let end = row_ptr[col + 1u];

        if (params.unit == 0u) {
            if (tid == 0u) {
                var diag: f32 = 0.0;
                for (var i = begin; i < end; i = i + 1u) {
                    if (col_idx[i] == col) {
                        diag = vals[i];
                        break;
                    }
                }
                x[col] = x[col] / diag;
            }
            storageBarrier();
        }

        let entry = x[col];
        for (var i = begin + tid; i < end; i = i + 256u) {
            let row = col_idx[i];
            if ((params.upper == 0u && row < col) || (params.upper == 1u && row > col)) {
                x[row] = x[row] - entry * vals[i];
            }
        }
        storageBarrier();
    }
}
`

// denseSolveShader solves a dense triangular system in place, one
// invocation per right-hand-side column. Columns never couple, so the
// kernel needs no barriers. Strides ride in the uniforms so transposed
// views solve without any data movement.
const denseSolveShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> b: array<f32>;

struct Params {
    n: u32,
    cols: u32,
    a_rs: u32,
    a_cs: u32,
    b_rs: u32,
    b_cs: u32,
    upper: u32,
    unit: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let c = global_id.x;
    if (c >= params.cols) {
        return;
    }
    let n = params.n;
    for (var step: u32 = 0u; step < n; step = step + 1u) {
        var row = step;
        if (params.upper == 1u) {
            row = n - step - 1u;
        }
        var entry = b[row * params.b_rs + c * params.b_cs];
        var k_begin: u32 = 0u;
        var k_end: u32 = row;
        if (params.upper == 1u) {
            k_begin = row + 1u;
            k_end = n;
        }
        for (var k = k_begin; k < k_end; k = k + 1u) {
            entry = entry - a[row * params.a_rs + k * params.a_cs] * b[k * params.b_rs + c * params.b_cs];
        }
        if (params.unit == 0u) {
            entry = entry / a[row * params.a_rs + row * params.a_cs];
        }
        b[row * params.b_rs + c * params.b_cs] = entry;
    }
}
`

// luFactorizeShader overwrites a with its unpivoted LU factors. One
// workgroup steps through the eliminations; the factor column and the
// trailing submatrix fan out across threads. Every element is written
// exactly once per step, so thread assignment cannot change the result.
const luFactorizeShader = `
@group(0) @binding(0) var<storage, read_write> a: array<f32>;

struct Params {
    n: u32,
    a_rs: u32,
    a_cs: u32,
}
@group(0) @binding(1) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(local_invocation_id) local_id: vec3<u32>) {
    let tid = local_id.x;
    let n = params.n;
    let rs = params.a_rs;
    let cs = params.a_cs;
    for (var k: u32 = 0u; k < n; k = k + 1u) {
        let pivot = a[k * rs + k * cs];
        for (var i = k + 1u + tid; i < n; i = i + 256u) {
            a[i * rs + k * cs] = a[i * rs + k * cs] / pivot;
        }
        storageBarrier();
        let m = n - k - 1u;
        for (var t = tid; t < m * m; t = t + 256u) {
            let i = k + 1u + t / m;
            let j = k + 1u + t % m;
            a[i * rs + j * cs] = a[i * rs + j * cs] - a[i * rs + k * cs] * a[k * rs + j * cs];
        }
        storageBarrier();
    }
}
`

// rowStatsShader extracts one per-row quantity, one invocation per row.
// Mode values follow the linalg.RowStat ordering: 0 infinity norm,
// 1 one-norm, 2 two-norm, 3 diagonal entry (0 when absent).
const rowStatsShader = `
@group(0) @binding(0) var<storage, read> row_ptr: array<u32>;
@group(0) @binding(1) var<storage, read> col_idx: array<u32>;
@group(0) @binding(2) var<storage, read> vals: array<f32>;
@group(0) @binding(3) var<storage, read_write> result: array<f32>;

struct Params {
    n: u32,
    mode: u32,
}
@group(0) @binding(4) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let row = global_id.x;
    if (row >= params.n) {
        return;
    }
    let begin = row_ptr[row];
    let end = row_ptr[row + 1u];
    var value: f32 = 0.0;
    if (params.mode == 3u) {
        for (var i = begin; i < end; i = i + 1u) {
            if (col_idx[i] == row) {
                value = vals[i];
                break;
            }
        }
    } else {
        for (var i = begin; i < end; i = i + 1u) {
            let v = vals[i];
            if (params.mode == 0u) {
                value = max(value, abs(v));
            } else if (params.mode == 1u) {
                value = value + abs(v);
            } else {
                value = value + v * v;
            }
        }
        if (params.mode == 2u) {
            value = sqrt(value);
        }
    }
    result[row] = value;
}
`

// csrMatVecShader computes result = a*x, one invocation per row.
const csrMatVecShader = `
@group(0) @binding(0) var<storage, read> row_ptr: array<u32>;
@group(0) @binding(1) var<storage, read> col_idx: array<u32>;
@group(0) @binding(2) var<storage, read> vals: array<f32>;
@group(0) @binding(3) var<storage, read> x: array<f32>;
@group(0) @binding(4) var<storage, read_write> result: array<f32>;

struct Params {
    n: u32,
}
@group(0) @binding(5) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let row = global_id.x;
    if (row >= params.n) {
        return;
    }
    var dot: f32 = 0.0;
    for (var i = row_ptr[row]; i < row_ptr[row + 1u]; i = i + 1u) {
        dot = dot + vals[i] * x[col_idx[i]];
    }
    result[row] = dot;
}
`
