//go:build cgo

package ffi

/*
#cgo LDFLAGS: -lm
#include <math.h>
#include <stdbool.h>
#include <stddef.h>

// Operation tags. Must match tensor.Operation.
enum {
	OP_ADD,
	OP_DIVIDE,
	OP_MULTIPLY,
	OP_SUBTRACT,
	OP_EXP,
	OP_TRANSPOSE,
	OP_PRODUCT
};

static int isElementwise(int operation) {
	return operation >= OP_ADD && operation <= OP_SUBTRACT;
}

static float operateBinaryScalars(float a, float b, int operation) {
	switch (operation) {
	case OP_ADD:
		return a + b;
	case OP_DIVIDE:
		return a / b;
	case OP_MULTIPLY:
		return a * b;
	default:
		return a - b;
	}
}

static float* operateBinaryVectors(
	float* a, int aSize,
	float* b, int bSize,
	int operation,
	float* out)
{
	if (aSize != bSize || !isElementwise(operation)) {
		return NULL;
	}
	for (int i = 0; i < aSize; i++) {
		out[i] = operateBinaryScalars(a[i], b[i], operation);
	}
	return out;
}

static float* operateBinaryVectorAndScalar(
	float* vector, int size,
	float scalar,
	int operation,
	bool reverse,
	float* out)
{
	if (!isElementwise(operation)) {
		return NULL;
	}
	for (int i = 0; i < size; i++) {
		out[i] = reverse
			? operateBinaryScalars(scalar, vector[i], operation)
			: operateBinaryScalars(vector[i], scalar, operation);
	}
	return out;
}

static float** operateBinaryMatrices(
	float** a, int rowsA, int columnsA,
	float** b, int rowsB, int columnsB,
	int operation,
	float** out)
{
	if (operation == OP_PRODUCT) {
		if (columnsA != rowsB) {
			return NULL;
		}
		for (int i = 0; i < rowsA; i++) {
			for (int j = 0; j < columnsB; j++) {
				float sum = 0;
				for (int k = 0; k < columnsA; k++) {
					sum += a[i][k] * b[k][j];
				}
				out[i][j] = sum;
			}
		}
		return out;
	}

	if (rowsA != rowsB || columnsA != columnsB || !isElementwise(operation)) {
		return NULL;
	}
	for (int i = 0; i < rowsA; i++) {
		for (int j = 0; j < columnsA; j++) {
			out[i][j] = operateBinaryScalars(a[i][j], b[i][j], operation);
		}
	}
	return out;
}

static float** operateBinaryMatrixAndScalar(
	float** matrix, int rows, int columns,
	float scalar,
	int operation,
	bool reverse,
	float** out)
{
	if (!isElementwise(operation)) {
		return NULL;
	}
	for (int i = 0; i < rows; i++) {
		for (int j = 0; j < columns; j++) {
			out[i][j] = reverse
				? operateBinaryScalars(scalar, matrix[i][j], operation)
				: operateBinaryScalars(matrix[i][j], scalar, operation);
		}
	}
	return out;
}

static float operateUnaryScalar(float a, int operation) {
	if (operation == OP_EXP) {
		return expf(a);
	}
	return a;
}

static float* operateUnaryVector(float* a, int size, int operation, float* out) {
	if (operation != OP_EXP) {
		return NULL;
	}
	for (int i = 0; i < size; i++) {
		out[i] = expf(a[i]);
	}
	return out;
}

static float** operateUnaryMatrix(
	float** a, int rows, int columns,
	int operation,
	float** out)
{
	switch (operation) {
	case OP_EXP:
		for (int i = 0; i < rows; i++) {
			for (int j = 0; j < columns; j++) {
				out[i][j] = expf(a[i][j]);
			}
		}
		return out;
	case OP_TRANSPOSE:
		for (int i = 0; i < rows; i++) {
			for (int j = 0; j < columns; j++) {
				out[j][i] = a[i][j];
			}
		}
		return out;
	default:
		return NULL;
	}
}
*/
import "C"

import "unsafe"

// foreignFunc is a native routine taking a fixed number of expanded words.
type foreignFunc struct {
	arity int
	call  func(w []word) word
}

func cInt(w word) C.int { return C.int(w.num) }
func cFloat(w word) C.float { return C.float(w.num) }
func cBool(w word) C.bool { return C.bool(w.num != 0) }
func cVec(w word) *C.float { return (*C.float)(w.ptr) }
func cMat(w word) **C.float { return (**C.float)(w.ptr) }
func ptrWord(p unsafe.Pointer) word { return word{ptr: p} }

var foreignFuncs = map[string]foreignFunc{
	"operateBinaryScalars": {3, func(w []word) word {
		return word{num: float64(C.operateBinaryScalars(cFloat(w[0]), cFloat(w[1]), cInt(w[2])))}
	}},
	"operateBinaryVectors": {6, func(w []word) word {
		return ptrWord(unsafe.Pointer(C.operateBinaryVectors(
			cVec(w[0]), cInt(w[1]), cVec(w[2]), cInt(w[3]), cInt(w[4]), cVec(w[5]))))
	}},
	"operateBinaryVectorAndScalar": {6, func(w []word) word {
		return ptrWord(unsafe.Pointer(C.operateBinaryVectorAndScalar(
			cVec(w[0]), cInt(w[1]), cFloat(w[2]), cInt(w[3]), cBool(w[4]), cVec(w[5]))))
	}},
	"operateBinaryMatrices": {8, func(w []word) word {
		return ptrWord(unsafe.Pointer(C.operateBinaryMatrices(
			cMat(w[0]), cInt(w[1]), cInt(w[2]), cMat(w[3]), cInt(w[4]), cInt(w[5]), cInt(w[6]), cMat(w[7]))))
	}},
	"operateBinaryMatrixAndScalar": {7, func(w []word) word {
		return ptrWord(unsafe.Pointer(C.operateBinaryMatrixAndScalar(
			cMat(w[0]), cInt(w[1]), cInt(w[2]), cFloat(w[3]), cInt(w[4]), cBool(w[5]), cMat(w[6]))))
	}},
	"operateUnaryScalar": {2, func(w []word) word {
		return word{num: float64(C.operateUnaryScalar(cFloat(w[0]), cInt(w[1])))}
	}},
	"operateUnaryVector": {4, func(w []word) word {
		return ptrWord(unsafe.Pointer(C.operateUnaryVector(cVec(w[0]), cInt(w[1]), cInt(w[2]), cVec(w[3]))))
	}},
	"operateUnaryMatrix": {5, func(w []word) word {
		return ptrWord(unsafe.Pointer(C.operateUnaryMatrix(cMat(w[0]), cInt(w[1]), cInt(w[2]), cInt(w[3]), cMat(w[4]))))
	}},
}

func lookup(name string) (foreignFunc, bool) {
	fn, ok := foreignFuncs[name]
	return fn, ok
}
